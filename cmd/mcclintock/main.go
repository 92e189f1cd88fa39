// mcclintock stages the shared artifacts of a TE-detection workflow and
// runs five detection back ends over them in fixed order.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/AmaliT/mcclintock"
)

var (
	INFO *log.Logger
	WARN *log.Logger
)

func main() {
	app := kingpin.New("mcclintock", "Run a panel of transposable-element detection tools over one paired-end sample.")
	app.Version("v0.2")

	referenceArg := app.Arg("reference", "reference genome fasta").Required().ExistingFile()
	consensusArg := app.Arg("consensus", "consensus TE fasta").Required().ExistingFile()
	annotationArg := app.Arg("te-locations", "GFF of known TE copies; every feature needs a unique ID attribute").Required().ExistingFile()
	familiesArg := app.Arg("te-families", "tab-delimited TE-to-family table (id, family)").Required().ExistingFile()
	fastq1Arg := app.Arg("fastq1", "paired-end reads, mate 1; name must end in _1.<ext>").Required().ExistingFile()
	fastq2Arg := app.Arg("fastq2", "paired-end reads, mate 2").Required().ExistingFile()
	configFlag := app.Flag("config", "configuration file (default: mcclintock.yaml in the working directory)").Default("").String()
	failFastFlag := app.Flag("failfast", "stop at the first failed detection tool instead of running all of them").Default("false").Bool()
	progressFlag := app.Flag("progress", "show stage progress").Default("false").Bool()
	threadsFlag := app.Flag("threads", "aligner threads").Default("0").Int()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// Register loggers.
	INFO = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WARN = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	mcclintock.Info = INFO
	mcclintock.Warn = WARN

	tools, failFast, threads := readConfig(*configFlag)
	if *failFastFlag {
		failFast = true
	}
	if *threadsFlag > 0 {
		threads = *threadsFlag
	}
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	inputs := mcclintock.Inputs{
		Reference:  *referenceArg,
		Consensus:  *consensusArg,
		Annotation: *annotationArg,
		FamilyMap:  *familiesArg,
		Fastq1:     *fastq1Arg,
		Fastq2:     *fastq2Arg,
	}
	wd, err := os.Getwd()
	if err != nil {
		app.Fatalf("%v", err)
	}
	layout, err := mcclintock.NewLayout(wd, inputs)
	if err != nil {
		app.Fatalf("%v", err)
	}

	run := &mcclintock.Run{
		ID:      uuid.New().String(),
		Inputs:  inputs,
		Layout:  layout,
		Tools:   tools,
		Threads: threads,
	}
	INFO.Printf("run %s: genome %s, sample %s", run.ID, layout.Genome, layout.Sample)

	pipeline := &mcclintock.Pipeline{FailFast: failFast}
	pipeline.AddFatal("create-tree", run.Layout.Create)
	pipeline.AddFatal("stage-inputs", func() error {
		if err := run.Layout.StageInputs(run.Inputs); err != nil {
			return err
		}
		return mcclintock.WriteManifest(run)
	})
	pipeline.AddFatal("prepare-reference", func() error { return mcclintock.PrepareReference(run) })
	pipeline.AddFatal("align-reads", func() error { return mcclintock.AlignReads(run) })
	pipeline.AddFatal("build-hierarchy", func() error { return mcclintock.BuildHierarchy(run) })
	pipeline.Add("relocate", func() error { return mcclintock.RunRelocaTE(run) })
	pipeline.Add("ngs-te-mapper", func() error { return mcclintock.RunNgsTEMapper(run) })
	pipeline.Add("retroseq", func() error { return mcclintock.RunRetroSeq(run) })
	pipeline.Add("te-locate", func() error { return mcclintock.RunTELocate(run) })
	pipeline.Add("popoolationte", func() error { return mcclintock.RunPopoolationTE(run) })

	var pbar *pb.ProgressBar
	if *progressFlag {
		pbar = pb.StartNew(pipeline.Len())
		pipeline.AfterStage = func(mcclintock.Outcome) { pbar.Increment() }
	}

	outcomes := pipeline.Run()
	if pbar != nil {
		pbar.Finish()
	}

	for _, o := range outcomes {
		status := "ok"
		if o.Err != nil {
			status = fmt.Sprintf("failed: %v", o.Err)
		}
		INFO.Printf("%-18s %12v  %s", o.Stage, o.Duration, status)
	}
	if mcclintock.Failed(outcomes) {
		os.Exit(1)
	}
}

// readConfig loads optional settings from a viper config file: external
// tool locations, the aligner thread count, and the failure policy.
func readConfig(path string) (tools mcclintock.Tools, failFast bool, threads int) {
	tools = mcclintock.DefaultTools()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("mcclintock")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		if path != "" {
			WARN.Fatalf("read config: %v", err)
		}
		return tools, false, 0
	}

	set := func(dst *string, key string) {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}
	set(&tools.Samtools, "Samtools_Path")
	set(&tools.Bwa, "Bwa_Path")
	set(&tools.Bedtools, "Bedtools_Path")
	set(&tools.RelocaTE, "RelocaTE_Path")
	set(&tools.NgsTEMapper, "Ngs_TE_Mapper_Path")
	set(&tools.RetroSeq, "RetroSeq_Path")
	set(&tools.TELocate, "TE_Locate_Path")
	set(&tools.PopoolationTE, "PopoolationTE_Path")
	failFast = viper.GetBool("Fail_Fast")
	threads = viper.GetInt("Bwa_Threads")
	return tools, failFast, threads
}
