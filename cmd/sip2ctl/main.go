package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/sip2ctl/internal/config"
	"github.com/danmuck/sip2ctl/internal/logging"
	"github.com/danmuck/sip2ctl/internal/protocol/codec"
	"github.com/danmuck/sip2ctl/internal/protocol/schema"
	"github.com/rs/zerolog/log"
)

const defaultCatalog = "cmd/sip2ctl/catalog.toml"

type options struct {
	catalog  string
	template string
	force    bool
	validate bool
	decode   string
}

func main() {
	logging.ConfigureRuntime()

	var opts options
	flag.StringVar(&opts.catalog, "catalog", defaultCatalog, "schema catalog path")
	flag.StringVar(&opts.template, "template", "", "write a catalog template to this path")
	flag.BoolVar(&opts.force, "force", false, "overwrite an existing template")
	flag.BoolVar(&opts.validate, "validate", false, "load the catalog and list its messages")
	flag.StringVar(&opts.decode, "decode", "", "decode a message body and print its fields as JSON")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "sip2ctl: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	if opts.template != "" {
		if err := config.WriteTemplate(opts.template, opts.force); err != nil {
			return err
		}
		log.Info().Str("path", opts.template).Msg("wrote catalog template")
		return nil
	}
	if !opts.validate && opts.decode == "" {
		return fmt.Errorf("nothing to do: pass -template, -validate or -decode")
	}

	catalog, err := config.LoadCatalog(opts.catalog, nil)
	if err != nil {
		return err
	}
	if opts.validate {
		for _, id := range catalog.IDs() {
			s, _ := catalog.Get(id)
			fmt.Fprintf(out, "%s %s fixed=%d named=%d\n",
				s.ID(), s.Name(), s.NumFixedParameters(), s.NumNamedParameters())
		}
	}
	if opts.decode != "" {
		s, msg, err := codec.DecodeWith(catalog, opts.decode)
		if err != nil {
			return err
		}
		return writeDecoded(out, s, msg)
	}
	return nil
}

type decodedField struct {
	Name  string `json:"name"`
	Key   string `json:"key,omitempty"`
	Value any    `json:"value"`
}

type decodedMessage struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Fixed   []decodedField    `json:"fixed"`
	Named   []decodedField    `json:"named"`
	Unknown map[string]string `json:"unknown,omitempty"`
	Errors  []string          `json:"errors,omitempty"`
}

func writeDecoded(out io.Writer, s *schema.MessageSchema, msg codec.Message) error {
	doc := decodedMessage{ID: s.ID(), Name: s.Name(), Unknown: msg.Unknown}
	for i, p := range s.FixedParameters() {
		doc.Fixed = append(doc.Fixed, decodedField{Name: p.Name, Value: msg.Fixed[i]})
	}
	for _, p := range s.NamedParameters() {
		if v, ok := msg.Named[p.Key]; ok {
			doc.Named = append(doc.Named, decodedField{Name: p.Name, Key: p.Key, Value: v})
		}
	}
	for _, fe := range codec.Validate(s, msg) {
		doc.Errors = append(doc.Errors, fe.Error())
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
