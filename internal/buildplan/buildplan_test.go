package buildplan

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/box3dmode/internal/boxmode"
	"github.com/philipparndt/box3dmode/internal/models"
	"github.com/philipparndt/box3dmode/internal/ui"
)

func quietUI(t *testing.T) {
	t.Helper()
	ui.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { ui.SetOutput(nil) })
}

func decodeResults(t *testing.T, data []byte) []models.Result {
	t.Helper()
	var file models.ResultFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	return file.Results
}

func TestCreatePlan(t *testing.T) {
	planner := NewPlanner(nil)

	plan, err := planner.CreatePlan(Request{ConfigFile: "jobs.yaml"})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 4)
	assert.IsType(t, &LoadJobsStep{}, plan.Steps[0])
	assert.IsType(t, &CheckPreconditionsStep{}, plan.Steps[1])
	assert.IsType(t, &ConvertBoxesStep{}, plan.Steps[2])
	assert.IsType(t, &WriteResultsStep{}, plan.Steps[3])

	plan, err = planner.CreatePlan(Request{Inline: &InlineJob{Src: boxmode.LIDAR, Dst: boxmode.CAM}})
	require.NoError(t, err)
	assert.IsType(t, &ParseInlineJobStep{}, plan.Steps[0])

	_, err = planner.CreatePlan(Request{})
	assert.Error(t, err)
	_, err = planner.CreatePlan(Request{ConfigFile: "a.yaml", Inline: &InlineJob{}})
	assert.Error(t, err)
	_, err = planner.CreatePlan(Request{ConfigFile: "boxes.txt"})
	assert.ErrorContains(t, err, "unknown file type")
}

func TestExecute_JobFileToStdout(t *testing.T) {
	quietUI(t)

	var stdout bytes.Buffer
	plan, err := NewPlanner(nil).CreatePlan(Request{
		ConfigFile: "../../example/extrinsic-config.yaml",
		Workers:    2,
		Stdout:     &stdout,
	})
	require.NoError(t, err)
	require.NoError(t, plan.Execute(context.Background()))

	results := decodeResults(t, stdout.Bytes())
	require.Len(t, results, 2)

	// Results keep the job order
	assert.Equal(t, "tilted-camera", results[0].Name)
	assert.Equal(t, boxmode.CAM, results[0].Mode)
	assert.True(t, results[0].WithYaw)

	assert.Equal(t, "centers-only", results[1].Name)
	assert.Equal(t, boxmode.DEPTH, results[1].Mode)
	assert.False(t, results[1].WithYaw)
	// cam (1, 1.5, 10) -> depth (1, 10, -1.5); size (4, 1.5, 1.8) -> (4, 1.8, 1.5)
	assert.InDeltaSlice(t, []float64{1, 10, -1.5, 4, 1.8, 1.5}, results[1].Boxes[0], 1e-9)
}

func TestExecute_WritesOutputFile(t *testing.T) {
	quietUI(t)

	dir := t.TempDir()
	jobs := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(jobs, []byte(`output: out/result.yaml
jobs:
  - name: kitti
    src: lidar
    dst: cam
    boxes:
      - [1, 2, 3, 4, 5, 6, 0]
`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "out"), 0o755))

	plan, err := NewPlanner(nil).CreatePlan(Request{ConfigFile: jobs})
	require.NoError(t, err)
	require.NoError(t, plan.Execute(context.Background()))

	assert.Equal(t, filepath.Join(dir, "out", "result.yaml"), plan.State.OutputFile)
	data, err := os.ReadFile(plan.State.OutputFile)
	require.NoError(t, err)

	results := decodeResults(t, data)
	require.Len(t, results, 1)
	assert.InDeltaSlice(t, []float64{-2, -3, 1, 4, 6, 5, -1.5707963267948966}, results[0].Boxes[0], 1e-9)
}

func TestExecute_OutputOverride(t *testing.T) {
	quietUI(t)

	out := filepath.Join(t.TempDir(), "override.yaml")
	plan, err := NewPlanner(nil).CreatePlan(Request{
		ConfigFile: "../../example/kitti-config.yaml",
		Output:     out,
	})
	require.NoError(t, err)
	require.NoError(t, plan.Execute(context.Background()))

	assert.Equal(t, out, plan.State.OutputFile)
	assert.FileExists(t, out)
}

func TestExecute_Inline(t *testing.T) {
	quietUI(t)

	var stdout bytes.Buffer
	plan, err := NewPlanner(nil).CreatePlan(Request{
		Inline: &InlineJob{
			Src:     boxmode.DEPTH,
			Dst:     boxmode.LIDAR,
			Boxes:   []string{"1, 2, 3, 4, 5, 6, 0", "0,0,0,1,1,1,0.5"},
			WithYaw: true,
			RTMat:   "1,0,0;0,1,0;0,0,1",
		},
		Plain:  true,
		Stdout: &stdout,
	})
	require.NoError(t, err)
	require.NoError(t, plan.Execute(context.Background()))

	results := decodeResults(t, stdout.Bytes())
	require.Len(t, results, 1)
	assert.Equal(t, "inline", results[0].Name)
	assert.Equal(t, boxmode.LIDAR, results[0].Mode)
	require.Len(t, results[0].Boxes, 2)
	// Identity rotation keeps the center; the closed-form depth->lidar yaw offset still applies
	assert.InDeltaSlice(t, []float64{1, 2, 3}, results[0].Boxes[0][:3], 1e-9)
}

func TestExecute_InlineErrors(t *testing.T) {
	quietUI(t)

	tests := []struct {
		name    string
		job     InlineJob
		wantErr string
	}{
		{"not a number", InlineJob{Src: boxmode.LIDAR, Dst: boxmode.CAM, WithYaw: true, Boxes: []string{"1,2,x"}}, "invalid box 0"},
		{"too few fields", InlineJob{Src: boxmode.LIDAR, Dst: boxmode.CAM, WithYaw: true, Boxes: []string{"1,2,3,4,5,6"}}, "need at least 7 fields"},
		{"bad rt_mat", InlineJob{Src: boxmode.LIDAR, Dst: boxmode.CAM, WithYaw: true, Boxes: []string{"1,2,3,4,5,6,0"}, RTMat: "1,0;0,1"}, "rt_mat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewPlanner(nil).CreatePlan(Request{Inline: &tt.job, Stdout: &bytes.Buffer{}})
			require.NoError(t, err)
			err = plan.Execute(context.Background())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestExecute_MissingOutputDir(t *testing.T) {
	quietUI(t)

	plan, err := NewPlanner(nil).CreatePlan(Request{
		ConfigFile: "../../example/kitti-config.yaml",
		Output:     filepath.Join(t.TempDir(), "missing", "out.yaml"),
	})
	require.NoError(t, err)
	err = plan.Execute(context.Background())
	assert.ErrorContains(t, err, "does not exist")
}

func TestConvertBoxesStep_Cancelled(t *testing.T) {
	quietUI(t)

	boxes, err := boxmode.NewBoxes(boxmode.LIDAR, [][]float64{{1, 2, 3, 4, 5, 6, 0}}, true)
	require.NoError(t, err)
	state := &State{Requests: []models.ConversionRequest{{Name: "a", Boxes: boxes, Dst: boxmode.CAM}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = (&ConvertBoxesStep{log: NewPlanner(nil).log}).Execute(ctx, state)
	assert.ErrorIs(t, err, context.Canceled)

	err = (&ConvertBoxesStep{log: NewPlanner(nil).log}).Execute(context.Background(), &State{})
	assert.ErrorContains(t, err, "no jobs")
}

func TestParseFloats(t *testing.T) {
	got, err := ParseFloats(" 1, -2.5 ,3e2", ",")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2.5, 300}, got)

	_, err = ParseFloats("1,,2", ",")
	assert.Error(t, err)
}
