package cmd

import (
	"github.com/faiface/pixel"
	"github.com/spf13/cobra"

	"github.com/hanak0/ggsweep/host"
	"github.com/hanak0/ggsweep/state"
	"github.com/hanak0/ggsweep/states"
)

var (
	pipelineConfigPath string
	autoConfirm        bool
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Render the digit sheet used by the game",
	Long: `Render the digits 0 to 8 into a 3x3 sheet, one per game square, and
save it as a PNG. The sheet is shown first; press Return to save it or
Escape to discard it.

Examples:
  ggsweep pipeline
  ggsweep pipeline --config /GenConfig.yaml --yes`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	pipeline, err := states.LoadPipeline(pipelineConfigPath, states.PipelineOptions{
		Resources:   resources(),
		AutoConfirm: autoConfirm,
		Log:         log,
	})
	if err != nil {
		return err
	}

	stack := state.NewStack(pipeline, pixel.RGB(38.0/255, 38.0/255, 38.0/255), state.WithLogger(log))
	if err := runWindow(stack, host.Config{
		Title: "ggsweep Pipeline",
		Size:  pixel.V(640, 480),
		VSync: true,
	}); err != nil {
		return err
	}

	if pipeline.Phase() == states.PhaseDone {
		log.WithField("path", pipeline.OutputPath()).Info("Digit sheet saved")
	}
	return nil
}

func init() {
	pipelineCmd.Flags().StringVarP(&pipelineConfigPath, "config", "c", "/GenConfig.yaml", "Pipeline config, relative to the resources directory")
	pipelineCmd.Flags().BoolVarP(&autoConfirm, "yes", "y", false, "Save the digit sheet without waiting for confirmation")
}
