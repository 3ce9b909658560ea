package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/cdoc"
	"github.com/fwojciec/cdoc/catalog"
	"github.com/fwojciec/cdoc/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Reader   cdoc.SourceReader
	Sources  cdoc.SourceService
	Entries  cdoc.EntryService
	Indexer  *catalog.Indexer
	Renderer func(format cdoc.Format) cdoc.Renderer

	OutputStore func(out string, renderer cdoc.Renderer, format cdoc.Format) cdoc.OutputStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log operations to stderr"`

	Render RenderCmd `cmd:"" help:"Render documentation for source files"`
	Add    AddCmd    `cmd:"" help:"Add source files to the catalog"`
	List   ListCmd   `cmd:"" help:"List catalogued sources"`
	Show   ShowCmd   `cmd:"" help:"Show documentation of a catalogued source"`
	Delete DeleteCmd `cmd:"" help:"Delete a source and its records"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Patterns []string `arg:"" name:"pattern" help:"Source files or glob patterns"`
	Format   string   `short:"f" default:"html" enum:"html,markdown,md,json,xml" help:"Output format (html, markdown, json, xml)"`
	Out      string   `short:"o" help:"Output directory (required for multiple files)"`
	Title    string   `short:"t" help:"Document title (defaults to the file name)"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Patterns    []string `arg:"" name:"pattern" help:"Source files or glob patterns"`
	Concurrency int      `short:"c" default:"8" help:"Concurrent read limit"`
	Rate        float64  `default:"0" help:"Requests per second per host for URL sources (0 disables)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name   string `arg:"" help:"Source name"`
	Format string `short:"f" default:"text" enum:"text,html,markdown,md,json,xml" help:"Output format (text, html, markdown, json, xml)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Source name"`
	Force bool   `help:"Confirm deletion"`
}
