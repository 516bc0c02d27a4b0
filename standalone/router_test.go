// Copyright Orbital Software Systems or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalsw/rtcontainer/rt/statejson"
)

type mockContainer struct {
	startErr  error
	stopErr   error
	notifyErr error
	joinErr   error

	startCalls  int
	stopCalls   int
	notifyCalls int
	joinCalls   int
}

func (m *mockContainer) Start() error              { m.startCalls++; return m.startErr }
func (m *mockContainer) Stop() error               { m.stopCalls++; return m.stopErr }
func (m *mockContainer) Notify() error             { m.notifyCalls++; return m.notifyErr }
func (m *mockContainer) WaitForTermination() error { m.joinCalls++; return m.joinErr }

func (m *mockContainer) Describe() statejson.ContainerDescription {
	return statejson.ContainerDescription{
		ID:    "mock",
		State: statejson.StateDescription{Name: "started"},
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(NewHTTPRouter(&mockContainer{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/test/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStartReturnsDescription(t *testing.T) {
	cont := &mockContainer{}
	srv := httptest.NewServer(NewHTTPRouter(cont))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/test/start", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, cont.startCalls)

	var desc statejson.ContainerDescription
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&desc))
	assert.Equal(t, "mock", desc.ID)
	assert.Equal(t, "started", desc.State.Name)
}

func TestNotifyFailureRendersError(t *testing.T) {
	cont := &mockContainer{notifyErr: errors.New("CondSignal failed")}
	srv := httptest.NewServer(NewHTTPRouter(cont))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/test/notify", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Container.NotifyError", body.ErrorType)
	assert.Contains(t, body.ErrorMessage, "CondSignal")
}

func TestStopAndWait(t *testing.T) {
	cont := &mockContainer{}
	srv := httptest.NewServer(NewHTTPRouter(cont))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/test/stop", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, cont.stopCalls)

	resp, err = http.Post(srv.URL+"/test/waitUntilTerminated", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, cont.joinCalls)
}

func TestInternalState(t *testing.T) {
	srv := httptest.NewServer(NewHTTPRouter(&mockContainer{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/test/internalState")
	require.NoError(t, err)
	defer resp.Body.Close()

	var desc statejson.ContainerDescription
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&desc))
	assert.Equal(t, "mock", desc.ID)
}
