// Command asn2ip runs a single lookup from the command line and writes the
// prefix artifact, without starting the web server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"asn2ip/internal/artifact"
	"asn2ip/internal/config"
	"asn2ip/internal/logging"
	"asn2ip/internal/lookup"
	"asn2ip/internal/models"
	"asn2ip/internal/pipeline"
	"asn2ip/internal/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("asn2ip", flag.ContinueOnError)
	fs.SetOutput(stderr)
	org := fs.String("org", cfg.DefaultOrgName, "Organization name to look up")
	output := fs.String("output", cfg.OutputFile, "Path of the prefix file to write")
	quiet := fs.Bool("quiet", false, "Only print the unique prefixes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.ValidateUpstreams(); err != nil {
		return err
	}
	if ok, msg := validation.ValidateOrganization(*org); !ok {
		return errors.New(msg)
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if *quiet {
		level = logging.ParseLevel("error")
	}
	logging.Init(cfg.LogFormat, level)

	client := lookup.NewClient(
		lookup.WithTimeout(cfg.LookupTimeout),
		lookup.WithUserAgent(cfg.UserAgent),
	)
	p := pipeline.New(
		lookup.NewResolver(client, cfg.BGPViewURL),
		lookup.NewCollector(client, cfg.RIPEStatURL),
		artifact.New(*output),
	)

	report, err := p.Run(ctx, *org)
	if err != nil {
		return err
	}

	if *quiet {
		for _, prefix := range report.Prefixes {
			fmt.Fprintln(stdout, prefix)
		}
		return nil
	}

	printReport(stdout, report)
	if report.IsComplete() {
		fmt.Fprintf(stdout, "\nWrote %d prefixes to %s\n", len(report.Prefixes), *output)
	}
	return nil
}

func printReport(w io.Writer, report *models.Report) {
	fmt.Fprintf(w, "ASN-2-IP lookup for %q (%s)\n", report.Organization, report.Status)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	for _, n := range report.Notices {
		fmt.Fprintf(w, "[%s] %s\n", strings.ToUpper(n.Level), n.Message)
	}
	if !report.IsComplete() {
		return
	}
	if report.HasErrors() {
		fmt.Fprintln(w, "Some lookups failed; results may be incomplete.")
	}

	s := report.Summary
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Country Codes\t%d\n", s.UniqueCountryCodes)
	fmt.Fprintf(tw, "ASN Numbers\t%d\n", s.UniqueASNs)
	fmt.Fprintf(tw, "Prefixes\t%d\n", s.UniquePrefixes)
	fmt.Fprintf(tw, "Names\t%d\n", s.UniqueNames)
	fmt.Fprintf(tw, "Descriptions\t%d\n", s.UniqueDescriptions)
	tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(models.TableColumns, "\t"))
	for _, row := range report.Table {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.ASN, row.CountryCode, row.Description, row.Name)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nASN Numbers: %s\n", report.ASNList)
}
