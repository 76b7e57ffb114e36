package sinks

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSink_SetsAttachmentHeaders(t *testing.T) {
	recorder := httptest.NewRecorder()
	sink := NewResponseSink(recorder, "application/zip")

	handle, err := sink.Open(testContext(), "export-media-2024-05-17.zip")
	require.NoError(t, err)
	_, err = handle.Write([]byte("zip bytes"))
	require.NoError(t, err)
	require.NoError(t, handle.Commit())
	require.NoError(t, handle.Release())

	assert.Equal(t, "application/zip", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=export-media-2024-05-17.zip", recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "zip bytes", recorder.Body.String())
}

func TestResponseSink_NonAsciiFileNameUsesExtendedParam(t *testing.T) {
	recorder := httptest.NewRecorder()
	sink := NewResponseSink(recorder, "application/zip")

	_, err := sink.Open(testContext(), "export-festança-2024-05-17.zip")
	require.NoError(t, err)

	disposition := recorder.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "filename*=utf-8''")
	assert.NotContains(t, disposition, "filename=export")
}

func TestResponseSink_OpenOnlyOnce(t *testing.T) {
	recorder := httptest.NewRecorder()
	sink := NewResponseSink(recorder, "text/csv; charset=utf-8")

	_, err := sink.Open(testContext(), "export-leads.csv")
	require.NoError(t, err)
	_, err = sink.Open(testContext(), "export-leads.csv")
	assert.Error(t, err)
}
