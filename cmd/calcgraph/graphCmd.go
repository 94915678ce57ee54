package main

import (
	"context"
	"io"

	"go.polydawn.net/calcgraph/config"
	"go.polydawn.net/calcgraph/graph"
	"go.polydawn.net/calcgraph/hitch"
	"go.polydawn.net/calcgraph/lib/asciimath"
	"go.polydawn.net/calcgraph/save"
)

func loadGraph(docPath string, stdin io.Reader, printer printer) (*graph.Graph, error) {
	cfg := graph.Config{Log: printer.log()}
	if docPath == "-" {
		return hitch.DecodeGraph(stdin, cfg)
	}
	return hitch.LoadGraphFromFile(docPath, cfg)
}

func StateCmd(docPath string, stdin io.Reader, printer printer) error {
	g, err := loadGraph(docPath, stdin, printer)
	if err != nil {
		return err
	}
	state, err := g.State()
	if err != nil {
		return err
	}
	printer.printState(state)
	return nil
}

func PayloadCmd(docPath string, stdin io.Reader, printer printer) error {
	g, err := loadGraph(docPath, stdin, printer)
	if err != nil {
		return err
	}
	payload, err := g.Payload()
	if err != nil {
		return err
	}
	printer.printPayload(payload)
	return nil
}

func SaveCmd(ctx context.Context, docPath string, stdin io.Reader, printer printer) error {
	timeout, err := config.GetTimeout()
	if err != nil {
		return err
	}
	g, err := loadGraph(docPath, stdin, printer)
	if err != nil {
		return err
	}
	client := save.NewClient(config.GetEndpoint(), config.GetCalculatorBase(), timeout, printer.log())
	if err := g.Save(ctx, client); err != nil {
		return err
	}
	printer.printSaved(g.Location(), g.Receipt())
	return nil
}

func TexCmd(source string, printer printer) error {
	tex, err := asciimath.Texify(source)
	if err != nil {
		return err
	}
	printer.printTex(tex)
	return nil
}
