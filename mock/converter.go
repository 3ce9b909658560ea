package mock

import "github.com/fwojciec/cdoc"

var _ cdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of cdoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
