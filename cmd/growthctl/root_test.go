package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/growthcast-api/internal/domain/growth"
	"github.com/phrazzld/growthcast-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const forecastJSON = `{
  "birth_date": "2024-01-01",
  "months": 3,
  "now": "2024-03-15T00:00:00Z",
  "growth_logs": [
    {"date": "2024-01-01", "weight_kg": 3.3, "height_cm": 49.9, "head_cm": 34.5},
    {"date": "2024-02-01", "weight_kg": 4.5, "height_cm": 54.7, "head_cm": 37.3},
    {"date": "2024-03-01", "weight_kg": 5.6, "height_cm": 58.4, "head_cm": 39.1}
  ],
  "nutrition_logs": [
    {"date": "2024-03-01", "daily_nutrient_intake": {"calories": 1600}, "deficiencies": ["iron"]}
  ]
}`

const forecastYAML = `birth_date: 2024-01-01
now: "2024-03-15T00:00:00Z"
growth_logs:
  - date: 2024-01-01
    weight_kg: 3.3
    height_cm: 49.9
    head_cm: 34.5
  - date: 2024-02-01
    weight_kg: 4.5
    height_cm: 54.7
    head_cm: 37.3
  - date: 2024-03-01
    weight_kg: 5.6
    height_cm: 58.4
    head_cm: 39.1
nutrition_logs:
  - date: 2024-03-01
    daily_nutrient_intake:
      calories: 1600
    deficiencies: [iron]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPredictJSON(t *testing.T) {
	path := writeFile(t, "input.json", forecastJSON)

	out, err := execute(t, "", "predict", "-f", path)
	require.NoError(t, err)

	var forecast service.Forecast
	require.NoError(t, json.Unmarshal([]byte(out), &forecast))
	assert.Nil(t, forecast.ChildID)
	assert.Equal(t, 3, forecast.Months)
	require.Len(t, forecast.Predictions, 3)

	first := forecast.Predictions[0]
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 3, first.AgeMonths)
	assert.InDelta(t, 0.9, first.Factors.Nutrition, 1e-9)
}

func TestPredictYAMLMatchesJSON(t *testing.T) {
	jsonPath := writeFile(t, "input.json", forecastJSON)
	yamlPath := writeFile(t, "input.yaml", forecastYAML)

	fromJSON, err := execute(t, "", "predict", "-f", jsonPath, "--months", "2")
	require.NoError(t, err)
	fromYAML, err := execute(t, "", "predict", "-f", yamlPath, "--months", "2")
	require.NoError(t, err)

	var a, b service.Forecast
	require.NoError(t, json.Unmarshal([]byte(fromJSON), &a))
	require.NoError(t, json.Unmarshal([]byte(fromYAML), &b))
	require.Len(t, a.Predictions, 2)
	assert.Equal(t, a.Predictions, b.Predictions)
}

func TestPredictFromStdin(t *testing.T) {
	out, err := execute(t, forecastJSON, "predict", "-f", "-", "--months", "1")
	require.NoError(t, err)

	var forecast service.Forecast
	require.NoError(t, json.Unmarshal([]byte(out), &forecast))
	assert.Len(t, forecast.Predictions, 1)
}

func TestPredictYAMLOutput(t *testing.T) {
	path := writeFile(t, "input.json", forecastJSON)

	out, err := execute(t, "", "predict", "-f", path, "-o", "yaml")
	require.NoError(t, err)

	var doc struct {
		Months      int `yaml:"months"`
		Predictions []struct {
			AgeMonths  int `yaml:"age_months"`
			Assessment struct {
				Status string `yaml:"status"`
			} `yaml:"assessment"`
		} `yaml:"predictions"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 3, doc.Months)
	require.Len(t, doc.Predictions, 3)
	assert.Equal(t, 3, doc.Predictions[0].AgeMonths)
	assert.NotEmpty(t, doc.Predictions[0].Assessment.Status)
}

func TestPredictErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		args []string
		want string
	}{
		{name: "unsupported extension", file: "input.txt", body: forecastJSON, want: "unsupported input format"},
		{name: "unknown field", file: "input.json", body: `{"birth_date":"2024-01-01","sex":"f"}`, want: "unknown field"},
		{name: "missing birth date", file: "input.json", body: `{"growth_logs":[]}`, want: "invalid input"},
		{name: "months out of range", file: "input.json", body: forecastJSON, args: []string{"--months", "30"}, want: service.ErrInvalidMonths.Error()},
		{name: "bad now", file: "input.json", body: forecastJSON, args: []string{"--now", "tomorrow"}, want: "now must be an RFC 3339 timestamp"},
		{name: "bad output format", file: "input.json", body: forecastJSON, args: []string{"-o", "xml"}, want: "unsupported output format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.body)
			args := append([]string{"predict", "-f", path}, tc.args...)
			_, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestStatus(t *testing.T) {
	path := writeFile(t, "input.yaml", forecastYAML)

	out, err := execute(t, "", "status", "-f", path, "--months", "3")
	require.NoError(t, err)

	var report []monthStatus
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report, 3)
	assert.Equal(t, "2024-04-01", report[0].Date)
	assert.Equal(t, growth.StatusNormal, report[0].Status)
	assert.NotEmpty(t, report[0].Recommendations)
}

func TestReference(t *testing.T) {
	out, err := execute(t, "", "reference", "--age", "2")
	require.NoError(t, err)

	var report referenceReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.AgeMonths)
	assert.Equal(t, growth.LookupStandard(2), report.ReferenceStandard)

	out, err = execute(t, "", "reference", "--age", "40", "-o", "yaml")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, growth.MaxReferenceAgeMonths, report.AgeMonths)
	assert.Equal(t, growth.LookupStandard(growth.MaxReferenceAgeMonths), report.ReferenceStandard)

	_, err = execute(t, "", "reference", "--age=-1")
	assert.Error(t, err)
}

func TestReminders(t *testing.T) {
	path := writeFile(t, "schedule.yaml", `medication: vitamin D
times_of_day: ["20:00", "08:00"]
start_date: 2024-03-01
end_date: 2024-03-03
`)

	out, err := execute(t, "", "reminders", "-f", path)
	require.NoError(t, err)

	var report reminderReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "vitamin D", report.Medication)
	assert.Equal(t, "UTC", report.Timezone)
	assert.Equal(t, 6, report.Count)
	require.Len(t, report.Occurrences, 6)
	assert.True(t, report.Occurrences[0].Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))

	out, err = execute(t, "", "reminders", "-f", path, "--timezone", "Europe/Berlin")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Europe/Berlin", report.Timezone)
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, 8, report.Occurrences[0].In(loc).Hour())

	var next reminderReport
	out, err = execute(t, "", "reminders", "-f", path, "--after", "2024-03-02T08:00:00Z")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &next))
	require.NotNil(t, next.Next)
	assert.True(t, next.Next.Equal(time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC)))

	out, err = execute(t, "", "reminders", "-f", path, "--after", "2024-03-03T20:00:00Z")
	require.NoError(t, err)
	next = reminderReport{}
	require.NoError(t, json.Unmarshal([]byte(out), &next))
	assert.Nil(t, next.Next, "no reminder remains after the last one")

	_, err = execute(t, "", "reminders", "-f", path, "--after", "tomorrow")
	assert.Error(t, err)

	bad := writeFile(t, "schedule.json", `{"times_of_day":["8am"],"start_date":"2024-03-01","end_date":"2024-03-03"}`)
	_, err = execute(t, "", "reminders", "-f", bad)
	assert.Error(t, err)
}
