package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/takt/pkg/importer"
	"github.com/harrisonrobin/takt/pkg/model"
	"github.com/harrisonrobin/takt/pkg/session"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the plan with tasks from an .xlsx or MS Project .xml file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Replace the plan with the built-in sample tasks",
	Args:  cobra.NoArgs,
	RunE:  runSample,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sampleCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	e, err := setup("import")
	if err != nil {
		return err
	}

	path := args[0]
	tasks, err := importer.ImportFile(path)
	if err != nil {
		// the saved plan is left as it was
		e.log.Debugf("import %s: %v", path, err)
		return errors.New(importer.Message(err))
	}
	if dups := model.DuplicateIDs(tasks); len(dups) > 0 {
		e.log.Warnf("duplicate task ids: %s", strings.Join(dups, ", "))
	}

	var prev *session.Plan
	if p, err := e.store.Load(); err == nil {
		prev = p
	} else if !errors.Is(err, session.ErrNoPlan) {
		e.log.Warnf("replacing unreadable plan %s: %v", e.store.Path, err)
	}
	if err := e.store.Save(session.Reimport(prev, filepath.Base(path), tasks)); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s\n", len(tasks), filepath.Base(path))
	return nil
}

func runSample(cmd *cobra.Command, _ []string) error {
	e, err := setup("import")
	if err != nil {
		return err
	}
	p := session.SamplePlan()
	if err := e.store.Save(p); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d sample tasks\n", len(p.Tasks))
	return nil
}
