package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dorapulse/dorapulse/internal/entity"
	"github.com/dorapulse/dorapulse/internal/store"
	"github.com/dorapulse/dorapulse/internal/usecase"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a deployment or incident event",
}

var recordDeploymentFlags struct {
	environment string
	version     string
	commit      string
	failed      bool
	rollback    bool
	duration    time.Duration
	artifacts   []string
}

var recordDeploymentCmd = &cobra.Command{
	Use:           "deployment",
	Short:         "Record a deployment attempt",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		injector, err := newInjector(ctx, loadConfig())
		if err != nil {
			return err
		}

		in := store.DeploymentInput{
			Environment: entity.Environment(recordDeploymentFlags.environment),
			Version:     recordDeploymentFlags.version,
			CommitHash:  recordDeploymentFlags.commit,
			Success:     !recordDeploymentFlags.failed,
			Rollback:    recordDeploymentFlags.rollback,
			Artifacts:   recordDeploymentFlags.artifacts,
		}
		if recordDeploymentFlags.duration > 0 {
			d := recordDeploymentFlags.duration
			in.Duration = &d
		}

		uc := do.MustInvoke[usecase.RecordDeploymentUsecase](injector)
		dep, err := uc.Execute(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(dep)
	},
}

var recordIncidentFlags struct {
	environment  string
	severity     string
	description  string
	deploymentID string
}

var recordIncidentCmd = &cobra.Command{
	Use:          "incident",
	Short:        "Record a new incident",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		injector, err := newInjector(ctx, loadConfig())
		if err != nil {
			return err
		}

		in := store.IncidentInput{
			Environment: entity.Environment(recordIncidentFlags.environment),
			Severity:    entity.Severity(recordIncidentFlags.severity),
			Description: recordIncidentFlags.description,
		}
		if recordIncidentFlags.deploymentID != "" {
			id := entity.ID(recordIncidentFlags.deploymentID)
			in.DeploymentID = &id
		}

		uc := do.MustInvoke[usecase.RecordIncidentUsecase](injector)
		inc, err := uc.Execute(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(inc)
	},
}

var resolveFlags struct {
	note string
}

var resolveCmd = &cobra.Command{
	Use:          "resolve <incident-id>",
	Short:        "Resolve an open incident",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		injector, err := newInjector(ctx, loadConfig())
		if err != nil {
			return err
		}

		uc := do.MustInvoke[usecase.ResolveIncidentUsecase](injector)
		inc, err := uc.Execute(ctx, entity.ID(args[0]), resolveFlags.note)
		if err != nil {
			return err
		}
		return printJSON(inc)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	recordDeploymentCmd.Flags().StringVarP(&recordDeploymentFlags.environment, "env", "e", string(entity.EnvProduction), "Deployment environment")
	recordDeploymentCmd.Flags().StringVar(&recordDeploymentFlags.version, "version", "", "Version label")
	recordDeploymentCmd.Flags().StringVar(&recordDeploymentFlags.commit, "commit", "", "Source commit hash")
	recordDeploymentCmd.Flags().BoolVar(&recordDeploymentFlags.failed, "failed", false, "Mark the deployment as failed")
	recordDeploymentCmd.Flags().BoolVar(&recordDeploymentFlags.rollback, "rollback", false, "Mark the deployment as a rollback")
	recordDeploymentCmd.Flags().DurationVar(&recordDeploymentFlags.duration, "duration", 0, "Deployment duration")
	recordDeploymentCmd.Flags().StringSliceVar(&recordDeploymentFlags.artifacts, "artifact", nil, "Changed artifact (repeatable)")

	recordIncidentCmd.Flags().StringVarP(&recordIncidentFlags.environment, "env", "e", string(entity.EnvProduction), "Incident environment")
	recordIncidentCmd.Flags().StringVarP(&recordIncidentFlags.severity, "severity", "s", string(entity.SeverityMedium), "Severity: low|medium|high|critical")
	recordIncidentCmd.Flags().StringVarP(&recordIncidentFlags.description, "description", "d", "", "Incident description")
	recordIncidentCmd.Flags().StringVar(&recordIncidentFlags.deploymentID, "deployment", "", "Causing deployment id")

	resolveCmd.Flags().StringVar(&resolveFlags.note, "note", "", "Resolution note")

	recordCmd.AddCommand(recordDeploymentCmd)
	recordCmd.AddCommand(recordIncidentCmd)
}
