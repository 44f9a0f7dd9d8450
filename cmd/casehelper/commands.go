package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/comigor/casehelper-go/internal/agent"
	"github.com/comigor/casehelper-go/internal/export"
	"github.com/comigor/casehelper-go/internal/history"
	"github.com/comigor/casehelper-go/internal/profile"
	"github.com/comigor/casehelper-go/internal/timeline"
)

// footer is shown under every answer.
const footer = "Important: This provides information, not legal advice. Always consult with your attorney for legal guidance specific to your case."

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context(), current, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var askQuick int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		if askQuick > 0 {
			q, ok := agent.QuickQuestion(askQuick)
			if !ok {
				return fmt.Errorf("--quick must be between 1 and %d", len(agent.QuickQuestions))
			}
			question = q
		}
		turn, err := current.assistant.Ask(cmd.Context(), question)
		if errors.Is(err, agent.ErrEmptyQuestion) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n\n%s\n", export.RoleLabel(turn.Role), turn.Text, footer)
		return nil
	},
}

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "List the preset questions",
	Run: func(cmd *cobra.Command, args []string) {
		for i, q := range agent.QuickQuestions {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q)
		}
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show or add case timeline events",
	Run: func(cmd *cobra.Command, args []string) {
		printTimeline(cmd, current.timeline.Snapshot())
	},
}

var timelineAddCmd = &cobra.Command{
	Use:   "add [date] [description]",
	Short: "Add an event, e.g. add 2024-05-01 \"Judicial review\"",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := current.timeline.Add(args[0], strings.Join(args[1:], " "))
		if errors.Is(err, timeline.ErrEmptyField) {
			return nil
		}
		if err != nil {
			return err
		}
		printTimeline(cmd, events)
		return nil
	},
}

func printTimeline(cmd *cobra.Command, events []timeline.Event) {
	for _, e := range events {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s\n", e.Date, e.Description)
	}
}

var (
	profileName     string
	profileCase     string
	profileAttorney string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the case profile",
	Run: func(cmd *cobra.Command, args []string) {
		printProfile(cmd, current.profile.Snapshot())
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields; unspecified fields are kept",
	RunE: func(cmd *cobra.Command, args []string) error {
		var u profile.Update
		if cmd.Flags().Changed("name") {
			u.Name = &profileName
		}
		if cmd.Flags().Changed("case-number") {
			u.CaseNumber = &profileCase
		}
		if cmd.Flags().Changed("attorney") {
			u.AttorneyName = &profileAttorney
		}
		printProfile(cmd, current.profile.Update(u))
		return nil
	},
}

func printProfile(cmd *cobra.Command, r profile.Record) {
	fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\nCase Number: %s\nAttorney: %s\n", r.Name, r.CaseNumber, r.AttorneyName)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversation as text or PDF",
}

var exportTextCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Write the conversation to a .txt file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := argOr(args, "case-conversation.txt")
		if err := export.WriteTextFile(path, current.log.Snapshot()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
		return nil
	},
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf [file]",
	Short: "Write profile, timeline and conversation to a PDF",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := argOr(args, "case-summary.pdf")
		if err := current.layout.WritePDFFile(path, current.sources().Snapshot()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
		return nil
	},
}

func argOr(args []string, def string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return def
}

var attachPreview string

var attachCmd = &cobra.Command{
	Use:   "attach [file]",
	Short: "Inspect an evidence file and optionally write an image preview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := current.evidence.Select(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "attached", a.String())
		if attachPreview == "" {
			return nil
		}
		if err := previewTo(current, attachPreview); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "preview written to", attachPreview)
		return nil
	},
}

// previewTo writes the attached image's preview to path, removing the file on failure.
func previewTo(a *app, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	_, err = a.evidence.Preview(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
	}
	return err
}

// caseDump is the YAML shape printed by dump.
type caseDump struct {
	Profile      profile.Record   `yaml:"profile"`
	Timeline     []timeline.Event `yaml:"timeline"`
	Conversation []history.Turn   `yaml:"conversation"`
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every stored entity as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := current.sources().Snapshot()
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(caseDump{Profile: snap.Profile, Timeline: snap.Events, Conversation: snap.Turns}); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	askCmd.Flags().IntVarP(&askQuick, "quick", "q", 0, "ask preset question N (see 'quick')")

	timelineCmd.AddCommand(timelineAddCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "your name")
	profileSetCmd.Flags().StringVar(&profileCase, "case-number", "", "court case number")
	profileSetCmd.Flags().StringVar(&profileAttorney, "attorney", "", "attorney's name")
	profileCmd.AddCommand(profileSetCmd)

	exportCmd.AddCommand(exportTextCmd, exportPDFCmd)

	attachCmd.Flags().StringVar(&attachPreview, "preview", "", "write a PNG preview of an image to this file")

}
