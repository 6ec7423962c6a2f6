package boxmode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"LiDAR", LIDAR, false},
		{"Lidar", LIDAR, false},
		{"lidar", LIDAR, false},
		{"Camera", CAM, false},
		{"cam", CAM, false},
		{" CAM ", CAM, false},
		{"Depth", DEPTH, false},
		{"depth", DEPTH, false},
		{"radar", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMode(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMode_Properties(t *testing.T) {
	assert.Equal(t, []Mode{LIDAR, CAM, DEPTH}, Modes())

	assert.Equal(t, 2, LIDAR.YawAxis())
	assert.Equal(t, 1, CAM.YawAxis())
	assert.Equal(t, 2, DEPTH.YawAxis())

	assert.Equal(t, [3]float64{0.5, 0.5, 0}, LIDAR.Origin())
	assert.Equal(t, [3]float64{0.5, 1.0, 0.5}, CAM.Origin())
	assert.Equal(t, [3]float64{0.5, 0.5, 0}, DEPTH.Origin())

	assert.False(t, Mode(3).Valid())
	assert.Equal(t, "Mode(3)", Mode(3).String())
}

func TestMode_TextRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		text, err := m.MarshalText()
		require.NoError(t, err)

		var back Mode
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, m, back)
	}

	_, err := Mode(5).MarshalText()
	assert.Error(t, err)
}

func TestMode_YAML(t *testing.T) {
	var doc struct {
		Src Mode `yaml:"src"`
		Dst Mode `yaml:"dst"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("src: LiDAR\ndst: camera\n"), &doc))
	assert.Equal(t, LIDAR, doc.Src)
	assert.Equal(t, CAM, doc.Dst)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "src: lidar\ndst: camera\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("src: sonar\n"), &doc))
}
