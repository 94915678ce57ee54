package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/inconshreveable/log15"
	"github.com/polydawn/refmt/json"
	"github.com/polydawn/refmt/obj/atlas"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/cmd/calcgraph/version"
)

type printer interface {
	log() log15.Logger
	printState(state string)
	printPayload(payload string)
	printSaved(location string, receipt api.SaveReceipt)
	printTex(tex string)
	printVersion()
}

var (
	_ printer = ansi{}
	_ printer = jsonPrinter{}
)

func setupPrinter(format format, lvl log15.Lvl, stdout, stderr io.Writer) printer {
	log := log15.New()
	switch format {
	case format_Ansi:
		log.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(stderr, log15.TerminalFormat())))
		return ansi{stdout: stdout, stderr: stderr, logger: log}
	case format_Json:
		log.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(stderr, log15.JsonFormat())))
		return jsonPrinter{stdout: stdout, logger: log}
	default:
		panic("unreachable")
	}
}

type ansi struct {
	stdout, stderr io.Writer
	logger         log15.Logger
}

var (
	savedFlare = []byte("\033[0;33m∴⟩ \033[0m")
	colorReset = []byte("\033[0m")
)

func (p ansi) log() log15.Logger { return p.logger }

func (p ansi) printState(state string) {
	fmt.Fprintln(p.stdout, state)
}

func (p ansi) printPayload(payload string) {
	fmt.Fprintln(p.stdout, payload)
}

func (p ansi) printSaved(location string, receipt api.SaveReceipt) {
	msg := bytes.NewBuffer(append([]byte{}, savedFlare...))
	msg.WriteString(fmt.Sprintf("saved graph \033[1;34m%s\033[0m", receipt.Hash))
	if receipt.Access != "" {
		msg.WriteString(fmt.Sprintf(" \033[1;30m(access: %s)", receipt.Access))
	}
	msg.Write(colorReset)
	msg.WriteByte('\n')
	msg.WriteTo(p.stderr)
	fmt.Fprintln(p.stdout, location)
}

func (p ansi) printTex(tex string) {
	fmt.Fprintln(p.stdout, tex)
}

func (p ansi) printVersion() {
	fmt.Fprintf(p.stdout, "calcgraph commit %s (dirty: %s) from %s\n",
		version.GitCommit, version.GitDirty, version.GitCommitDate)
}

/*
	jsonPrinter emits exactly one json object per line on stdout for each
	result; logs go to stderr, also as json.
*/
type jsonPrinter struct {
	stdout io.Writer
	logger log15.Logger
}

type stateEvent struct{ State string }
type payloadEvent struct{ Payload string }
type texEvent struct{ Tex string }
type savedEvent struct {
	Location string
	Receipt  api.SaveReceipt
}
type versionEvent struct {
	GitCommit     string
	GitDirty      string
	GitCommitDate string
}

var printAtlas = atlas.MustBuild(
	api.SaveReceipt_AtlasEntry,
	atlas.BuildEntry(stateEvent{}).StructMap().
		AddField("State", atlas.StructMapEntry{SerialName: "state"}).
		Complete(),
	atlas.BuildEntry(payloadEvent{}).StructMap().
		AddField("Payload", atlas.StructMapEntry{SerialName: "payload"}).
		Complete(),
	atlas.BuildEntry(texEvent{}).StructMap().
		AddField("Tex", atlas.StructMapEntry{SerialName: "tex"}).
		Complete(),
	atlas.BuildEntry(savedEvent{}).StructMap().
		AddField("Location", atlas.StructMapEntry{SerialName: "location"}).
		AddField("Receipt", atlas.StructMapEntry{SerialName: "receipt"}).
		Complete(),
	atlas.BuildEntry(versionEvent{}).StructMap().
		AddField("GitCommit", atlas.StructMapEntry{SerialName: "gitCommit"}).
		AddField("GitDirty", atlas.StructMapEntry{SerialName: "gitDirty"}).
		AddField("GitCommitDate", atlas.StructMapEntry{SerialName: "gitCommitDate"}).
		Complete(),
)

func (p jsonPrinter) emit(evt interface{}) {
	if err := json.NewMarshallerAtlased(p.stdout, json.EncodeOptions{}, printAtlas).Marshal(evt); err != nil {
		panic(err)
	}
	p.stdout.Write([]byte{'\n'})
}

func (p jsonPrinter) log() log15.Logger { return p.logger }

func (p jsonPrinter) printState(state string) { p.emit(stateEvent{state}) }

func (p jsonPrinter) printPayload(payload string) { p.emit(payloadEvent{payload}) }

func (p jsonPrinter) printSaved(location string, receipt api.SaveReceipt) {
	p.emit(savedEvent{location, receipt})
}

func (p jsonPrinter) printTex(tex string) { p.emit(texEvent{tex}) }

func (p jsonPrinter) printVersion() {
	p.emit(versionEvent{version.GitCommit, version.GitDirty, version.GitCommitDate})
}
