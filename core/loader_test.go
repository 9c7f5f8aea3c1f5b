package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONLDecodesCommits(t *testing.T) {
	input := `{"Hash":"a","AuthorEmail":"x@x.com","CommitTSUTC":1,"DtPrevCommitSec":-1,"DtPrevAuthorSec":-1}
{"Hash":"b","AuthorEmail":"y@x.com","CommitTSUTC":2,"DtPrevCommitSec":-1,"DtPrevAuthorSec":-1}`
	commits, err := LoadJSONL(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, commits, 2)
	assert.Equal(t, "a", commits[0].Hash)
}

func TestLoadJSONLSkipsBlankLines(t *testing.T) {
	input := "{\"Hash\":\"a\",\"AuthorEmail\":\"x@x.com\",\"CommitTSUTC\":1,\"DtPrevCommitSec\":-1,\"DtPrevAuthorSec\":-1}\n\n"
	commits, err := LoadJSONL(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, commits, 1)
}

func TestLoadJSONLMissingHashFails(t *testing.T) {
	input := `{"AuthorEmail":"x@x.com","CommitTSUTC":1}`
	_, err := LoadJSONL(strings.NewReader(input))
	assert.Error(t, err)
}

func TestLoadJSONLMalformedFails(t *testing.T) {
	_, err := LoadJSONL(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestLoadCSVDecodesCommits(t *testing.T) {
	input := "hash,author_email,commit_ts_utc,dt_prev_commit_sec,dt_prev_author_sec,files_changed,insertions,deletions,is_merge,dirs_touched,file_types,msg_subject\n" +
		"a,x@x.com,1000,,,2,10,5,false,core;api,go,add feature\n"
	commits, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "a", commits[0].Hash)
	assert.Equal(t, []string{"core", "api"}, commits[0].DirsTouched)
	assert.Equal(t, -1.0, commits[0].DtPrevCommitSec)
}

func TestLoadCSVMissingRequiredColumnFails(t *testing.T) {
	input := "author_email,commit_ts_utc\nx@x.com,1\n"
	_, err := LoadCSV(strings.NewReader(input))
	assert.Error(t, err)
}

func TestLoadCSVEmptyInputYieldsNoCommits(t *testing.T) {
	commits, err := LoadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, commits)
}
