package cdoc_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/fwojciec/cdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleC mirrors a small C file with two documented functions and one
// ordinary comment that must stay out of the documentation.
const sampleC = `#include <stdio.h>

/**
 * @brief Computes the sum of two integers.
 * * This function takes two integers and returns
 * their sum. It is handy for basic additions.
 * * @param a Ignored because of the double star.
 * @param a The first integer.
 * @param b The second integer.
 * @return The sum of a and b.
 */
int addition(int a, int b) {
    return a + b;
}

/**
 * @brief Prints a greeting.
 * @param name The name of the person to greet.
 */
void say_hello(char* name) {
    printf("Hello %s", name);
}

// A simple comment that must not be documented.
int x = 0;
`

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts tagged function documentation", func(t *testing.T) {
		t.Parallel()

		src := "/** @brief Computes sum.\n@param a first\n@param b second\n@return total */ int sum(int a, int b) { return a+b; }"

		records := cdoc.Extract(src)

		require.Len(t, records, 1)
		rec := records[0]
		assert.Equal(t, "Computes sum.", rec.Brief)
		assert.Equal(t, []cdoc.Param{
			{Name: "a", Description: "first"},
			{Name: "b", Description: "second"},
		}, rec.Params)
		assert.Equal(t, "total", rec.Returns)
		assert.Equal(t, "int sum(int a, int b)", rec.SignaturePreview)
		assert.Equal(t, 1, rec.Line)
	})

	t.Run("extracts every documented declaration of a C file", func(t *testing.T) {
		t.Parallel()

		records := cdoc.Extract(sampleC)

		require.Len(t, records, 2)

		assert.Equal(t, "int addition(int a, int b)", records[0].SignaturePreview)
		assert.Equal(t, "Computes the sum of two integers.", records[0].Brief)
		assert.Equal(t, []cdoc.Param{
			{Name: "a", Description: "The first integer."},
			{Name: "b", Description: "The second integer."},
		}, records[0].Params)
		assert.Equal(t, "The sum of a and b.", records[0].Returns)
		assert.Equal(t, 3, records[0].Line)

		assert.Equal(t, "void say_hello(char* name)", records[1].SignaturePreview)
		assert.Equal(t, "Prints a greeting.", records[1].Brief)
		assert.Equal(t, []cdoc.Param{
			{Name: "name", Description: "The name of the person to greet."},
		}, records[1].Params)
		assert.Empty(t, records[1].Returns)
	})

	t.Run("returns nothing without doc comments", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, cdoc.Extract("/* plain */ int x;\n// line\nint y;"))
	})

	t.Run("skips blocks without brief", func(t *testing.T) {
		t.Parallel()

		src := "/** @param x value\n@return nothing */ f(x);\n/** Kept. */ g();"

		records := cdoc.Extract(src)

		require.Len(t, records, 1)
		assert.Equal(t, "Kept.", records[0].Brief)
		assert.Equal(t, "g()", records[0].SignaturePreview)
	})

	t.Run("never emits an empty brief", func(t *testing.T) {
		t.Parallel()

		src := "/** */ a();\n/***/ b();\n/** @brief */ c();\n/**\n *\n */ d();\n" + sampleC

		for _, rec := range cdoc.Extract(src) {
			assert.NotEmpty(t, rec.Brief)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, cdoc.Extract(sampleC), cdoc.Extract(sampleC))
	})

	t.Run("preserves source order", func(t *testing.T) {
		t.Parallel()

		src := "/** One. */ a();\n/** @param x y */ skip();\n/** Two. */ b();\n/** Three. */ c();"

		var briefs []string
		var lines []int
		for _, rec := range cdoc.Extract(src) {
			briefs = append(briefs, rec.Brief)
			lines = append(lines, rec.Line)
		}

		assert.Equal(t, []string{"One.", "Two.", "Three."}, briefs)
		assert.True(t, slices.IsSorted(lines))
	})
}

func TestRecords_StopsWhenConsumerStops(t *testing.T) {
	t.Parallel()

	var briefs []string
	for rec := range cdoc.Records(sampleC) {
		briefs = append(briefs, rec.Brief)
		break
	}

	assert.Equal(t, []string{"Computes the sum of two integers."}, briefs)
}

func TestParseBlock(t *testing.T) {
	t.Parallel()

	parse := func(t *testing.T, body string) (cdoc.DocRecord, bool) {
		t.Helper()
		return cdoc.ParseBlock(cdoc.RawBlock{CommentBody: body})
	}

	t.Run("strips decoration before tag detection", func(t *testing.T) {
		t.Parallel()

		plain := "\n@brief Adds.\n@param a left\n@param b right\n@return sum\n"
		lines := strings.Split(plain, "\n")
		for i := range lines {
			lines[i] = " * " + lines[i]
		}
		decorated := strings.Join(lines, "\n")

		want, ok := parse(t, plain)
		require.True(t, ok)
		got, ok := parse(t, decorated)
		require.True(t, ok)

		assert.Equal(t, want, got)
	})

	t.Run("pairs param name and description", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, "@brief b\n@param x the input value")

		require.True(t, ok)
		assert.Equal(t, []cdoc.Param{{Name: "x", Description: "the input value"}}, rec.Params)
	})

	t.Run("drops param without description", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, "@brief b\n@param x\n@param")

		require.True(t, ok)
		assert.Empty(t, rec.Params)
	})

	t.Run("splits param on first whitespace run", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, "@brief b\n@param  x\t  the value  ")

		require.True(t, ok)
		assert.Equal(t, []cdoc.Param{{Name: "x", Description: "the value"}}, rec.Params)
	})

	t.Run("keeps duplicate params in order", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, "@brief b\n@param x one\n@param y two\n@param x three")

		require.True(t, ok)
		assert.Equal(t, []cdoc.Param{
			{Name: "x", Description: "one"},
			{Name: "y", Description: "two"},
			{Name: "x", Description: "three"},
		}, rec.Params)
	})

	t.Run("falls back to first prose line", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, "\n * Adds two numbers.\n * Second line of prose.\n * @return sum\n")

		require.True(t, ok)
		assert.Equal(t, "Adds two numbers.", rec.Brief)
		assert.Equal(t, "sum", rec.Returns)
	})

	t.Run("brief tag overrides earlier prose", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, "Prose first.\n@brief Tagged.")

		require.True(t, ok)
		assert.Equal(t, "Tagged.", rec.Brief)
	})

	t.Run("later brief tag overwrites earlier one", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, "@brief first\n@brief second")

		require.True(t, ok)
		assert.Equal(t, "second", rec.Brief)
	})

	t.Run("later return tag overwrites earlier one", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, "@brief b\n@return first\n@returns second")

		require.True(t, ok)
		assert.Equal(t, "second", rec.Returns)
	})

	t.Run("ignores unrecognized tags", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, "@author someone\n@briefly not a brief\nReal brief.")

		require.True(t, ok)
		assert.Equal(t, "Real brief.", rec.Brief)
	})

	t.Run("treats double star line as prose", func(t *testing.T) {
		t.Parallel()

		rec, ok := parse(t, " * @brief Tagged.\n * * @param a hidden")

		require.True(t, ok)
		assert.Equal(t, "Tagged.", rec.Brief)
		assert.Empty(t, rec.Params)
	})

	t.Run("tag matching is case sensitive", func(t *testing.T) {
		t.Parallel()

		_, ok := parse(t, "@Brief Not a tag.")

		assert.False(t, ok)
	})

	t.Run("reports no record without brief", func(t *testing.T) {
		t.Parallel()

		_, ok := parse(t, "\n * @param x value\n * @return nothing\n")

		assert.False(t, ok)
	})

	t.Run("reports no record for empty body", func(t *testing.T) {
		t.Parallel()

		_, ok := parse(t, "")

		assert.False(t, ok)
	})

	t.Run("builds preview from trailing context", func(t *testing.T) {
		t.Parallel()

		rec, ok := cdoc.ParseBlock(cdoc.RawBlock{
			CommentBody:     "Brief.",
			TrailingContext: "static const struct very_long_type_name *lookup_table_entry(size_t index)",
			Line:            12,
		})

		require.True(t, ok)
		assert.Equal(t, "static const struct very_long_type_name *lookup_ta...", rec.SignaturePreview)
		assert.Equal(t, 12, rec.Line)
	})
}

func TestClassifyLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		wantTag  cdoc.Tag
		wantRest string
	}{
		{name: "brief", line: "@brief Adds.", wantTag: cdoc.TagBrief, wantRest: "Adds."},
		{name: "bare brief", line: "@brief", wantTag: cdoc.TagBrief, wantRest: ""},
		{name: "param", line: "@param a first", wantTag: cdoc.TagParam, wantRest: "a first"},
		{name: "return", line: "@return total", wantTag: cdoc.TagReturn, wantRest: "total"},
		{name: "returns alias", line: "@returns total", wantTag: cdoc.TagReturn, wantRest: "total"},
		{name: "tab delimiter", line: "@return\ttotal", wantTag: cdoc.TagReturn, wantRest: "total"},
		{name: "unknown tag", line: "@see other", wantTag: cdoc.TagUnrecognized, wantRest: "@see other"},
		{name: "tag prefix only", line: "@params a b", wantTag: cdoc.TagUnrecognized, wantRest: "@params a b"},
		{name: "prose", line: "Adds two numbers.", wantTag: cdoc.TagNone, wantRest: "Adds two numbers."},
		{name: "blank", line: "", wantTag: cdoc.TagNone, wantRest: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tag, rest := cdoc.ClassifyLine(tt.line)

			assert.Equal(t, tt.wantTag, tag)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestCleanLines(t *testing.T) {
	t.Parallel()

	got := cdoc.CleanLines("\n * one\n *two\n\t*\tthree\n ** four\n   plain  \n */")

	assert.Equal(t, []string{"", "one", "two", "three", "* four", "plain", "/"}, got)
}
