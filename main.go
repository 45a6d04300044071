package main

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"os"
	"virustrace/builder"
	"virustrace/conf"
	"virustrace/graph"
	"virustrace/helper"
	"virustrace/logs"
	"virustrace/models"
	"virustrace/parser"
	"virustrace/report"
	"virustrace/service"
)

var (
	configPath string
	showPath   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "virustrace",
		Short:        "Decide whether a virus can spread between two computers within a time window",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			conf.Init(configPath)
			logs.Init(conf.Config.Trace.LogFile)
			logs.SetVerbose(conf.Config.Trace.Verbose)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", conf.DefaultPath, "path of the yaml config")

	traceCmd := &cobra.Command{
		Use:   "trace <file>",
		Short: "Read communications and a query from a file and trace the spread",
		Args:  cobra.ExactArgs(1),
		RunE:  TraceFile,
	}
	traceCmd.Flags().BoolVarP(&showPath, "path", "p", false, "print the full infection path")

	rootCmd.AddCommand([]*cobra.Command{
		traceCmd,
		{
			Use:   "dot <file> <name>",
			Short: "Trace a file and draw the contact graph with the infection path",
			Args:  cobra.ExactArgs(2),
			RunE:  GenerateDot,
		},
		{
			Use:   "import <batch> <file>",
			Short: "Store the communications of a file in the database under a batch name",
			Args:  cobra.ExactArgs(2),
			RunE:  ImportBatch,
		},
		{
			Use:   "graph <batch> <source> <minTime> <target> <maxTime>",
			Short: "Trace a query against a stored batch",
			Args:  cobra.ExactArgs(5),
			RunE:  TraceBatch,
		},
		{
			Use:   "service",
			Short: "Start a http service that answers trace queries",
			Args:  cobra.NoArgs,
			RunE:  StartHTTP,
		},
	}...)
	if err := rootCmd.Execute(); err != nil {
		logs.Logger.WithError(err).Fatal("failed to run command")
	}
}

// search runs q against g and prints the traversal and verdict to stdout.
func search(g *graph.Graph, q graph.Query) (graph.Result, error) {
	w := report.NewWriter(os.Stdout, showPath)
	w.Start(q.Source)
	res, err := g.Search(q, graph.WithTracer(func(t graph.Trace) {
		logs.Logger.Debug(report.TraceLine(t))
		w.Trace(t)
	}))
	if err != nil {
		if errors.Is(err, graph.ErrUnknownNode) {
			return res, fmt.Errorf("query %+v: %w", q, err)
		}
		return res, err
	}
	w.Result(res)
	return res, nil
}

func TraceFile(_ *cobra.Command, args []string) error {
	in, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	_, err = search(in.Build(), in.Query)
	return err
}

// GenerateDot draws the traced contact graph
func GenerateDot(_ *cobra.Command, args []string) error {
	in, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	g := in.Build()
	res, err := search(g, in.Query)
	if err != nil {
		return err
	}
	dotName, err := builder.Visualize(builder.Export(g, &in.Query, &res), conf.Config.Trace.GraphDir, args[1])
	if err != nil {
		return err
	}
	logs.Logger.Infof("wrote %s", dotName)
	svgName, err := builder.RenderSVG(dotName)
	if err != nil {
		logs.Logger.WithError(err).Warn("graphviz is unavailable, only the dot file was written")
		return nil
	}
	logs.Logger.Infof("wrote %s", svgName)
	return nil
}

func ImportBatch(_ *cobra.Command, args []string) error {
	in, err := parser.ParseFile(args[1])
	if err != nil {
		return err
	}
	models.Init()
	_, err = models.SaveBatch(models.GetMysqlDB(), args[0], in.Triples)
	return err
}

func TraceBatch(_ *cobra.Command, args []string) error {
	var fields [4]int64
	for i, s := range args[1:] {
		v, err := helper.ParseID(s)
		if err != nil {
			return fmt.Errorf("argument %q: %w", s, err)
		}
		fields[i] = v
	}
	q := graph.Query{Source: fields[0], MinTime: fields[1], Target: fields[2], MaxTime: fields[3]}

	models.Init()
	db := models.GetMysqlDB()
	triples, err := models.LoadBatch(db, args[0])
	if err != nil {
		return err
	}
	res, err := search(graph.Build(0, triples), q)
	if err != nil {
		return err
	}
	record := models.NewTraceRecord(uuid.NewString(), args[0], q, res)
	return models.SaveTrace(db, &record)
}

func StartHTTP(_ *cobra.Command, _ []string) error {
	models.Init()
	return service.NewRouter().Run(conf.Config.Service.Port)
}
