package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/skill-extractor/internal/schemas"
	"github.com/jonathan/skill-extractor/internal/types"
	schemafiles "github.com/jonathan/skill-extractor/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeText = "Senior software engineer with 5 years of Python experience. " +
	"Built services on Kubernetes and Docker, with React and Node.js frontends."

func findSkill(result types.ExtractionResult, name string) *types.SkillMatch {
	for i := range result.Matches {
		if result.Matches[i].NormalizedForm == name {
			return &result.Matches[i]
		}
	}
	return nil
}

func TestExtractCommand_Stdout(t *testing.T) {
	offlineEnv(t)
	textFile := writeTempFile(t, "resume.txt", resumeText)

	stdout, _, err := executeCommand(t, nil, "extract", "--text", textFile, "--industry", "technology")
	require.NoError(t, err)

	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.NotEmpty(t, result.Matches)
	assert.NotNil(t, findSkill(result, "python"))
	assert.Equal(t, types.IndustryTechnology, result.Metadata.Industry)
	assert.False(t, result.Metadata.AISignal)
	assert.NotEmpty(t, result.Metadata.KnowledgeVersion)
}

func TestExtractCommand_OutFileAndVerbose(t *testing.T) {
	offlineEnv(t)
	textFile := writeTempFile(t, "resume.txt", resumeText)
	outFile := filepath.Join(t.TempDir(), "result.json")

	stdout, stderr, err := executeCommand(t, nil, "extract", "-t", textFile, "-o", outFile, "--verbose")
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "EXTRACTION SUMMARY")
	assert.Contains(t, stderr, "EXTRACTED SKILLS")
	assert.Contains(t, stderr, "Output: "+outFile)

	_, err = os.Stat(outFile)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateFile(schemafiles.ExtractionResult, outFile))
}

func TestExtractCommand_Stdin(t *testing.T) {
	offlineEnv(t)

	stdout, _, err := executeCommand(t, strings.NewReader(resumeText), "extract", "--text", "-")
	require.NoError(t, err)

	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.NotNil(t, findSkill(result, "python"))
}

func TestExtractCommand_JobDescription(t *testing.T) {
	offlineEnv(t)
	textFile := writeTempFile(t, "resume.txt", resumeText)
	jobFile := writeTempFile(t, "job.txt", "We need Python, Terraform and Ansible experience.")

	stdout, _, err := executeCommand(t, nil, "extract", "--text", textFile, "--job", jobFile)
	require.NoError(t, err)

	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	// Missing skills are sorted and capped, so ansible always makes the cut
	assert.Contains(t, result.MissingCriticalSkills, "ansible")
	assert.LessOrEqual(t, len(result.MissingCriticalSkills), 10)
	assert.NotContains(t, result.MissingCriticalSkills, "python")
}

func TestExtractCommand_UnknownIndustryWarns(t *testing.T) {
	offlineEnv(t)
	textFile := writeTempFile(t, "resume.txt", resumeText)

	stdout, stderr, err := executeCommand(t, nil, "extract", "--text", textFile, "--industry", "aerospace")
	require.NoError(t, err)
	assert.Contains(t, stderr, `unknown industry "aerospace"`)

	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, types.IndustryUnknown, result.Metadata.Industry)
}

func TestExtractCommand_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --text flag",
			args:        []string{"extract", "--industry", "technology"},
			errorString: "required flag",
		},
		{
			name:        "Text file does not exist",
			args:        []string{"extract", "--text", filepath.Join(os.TempDir(), "does-not-exist.txt")},
			errorString: "failed to read text",
		},
		{
			name:        "Job file does not exist",
			args:        []string{"extract", "--text", "-", "--job", filepath.Join(os.TempDir(), "missing-job.txt")},
			errorString: "failed to read job description",
		},
		{
			name:        "Text and job both from stdin",
			args:        []string{"extract", "--text", "-", "--job", "-"},
			errorString: "cannot both read stdin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offlineEnv(t)
			_, _, err := executeCommand(t, strings.NewReader("Python"), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestExtractCommand_InvalidConfig(t *testing.T) {
	offlineEnv(t)
	t.Setenv("SKILLX_EXTRACTION_CONFIDENCE_THRESHOLD", "1.5")

	_, _, err := executeCommand(t, strings.NewReader("Python"), "extract", "--text", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}
