package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// attempt tags a request with how many times it has been sent. The tag is an
// immutable context value rather than a field on the request, so a replay is a
// fresh request object and two goroutines can never race on shared state.
type attempt int

const (
	attemptFirst attempt = iota
	attemptRetried
)

type attemptKey struct{}

func attemptFromContext(ctx context.Context) attempt {
	if a, ok := ctx.Value(attemptKey{}).(attempt); ok {
		return a
	}

	return attemptFirst
}

func withAttempt(ctx context.Context, a attempt) context.Context {
	return context.WithValue(ctx, attemptKey{}, a)
}

// renewalTransport is an http.RoundTripper that attaches the session's access
// token to every request and, on a 401, silently renews the token and replays
// the request exactly once. A 401 on the replay is surfaced to the caller as
// final, after the session has been cleared.
type renewalTransport struct {
	base    http.RoundTripper
	session *Session

	// refreshClient shares the cookie jar with the main client so the
	// HttpOnly refresh cookie rides along without the code ever seeing it.
	refreshClient *http.Client
	refreshURL    string

	// onSessionExpired fires when renewal fails or the replay is rejected,
	// i.e. when the user must sign in again. Optional.
	onSessionExpired func()
}

// RoundTrip implements http.RoundTripper.
func (t *renewalTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	outReq := req.Clone(req.Context())
	if token := t.session.AccessToken(); token != "" {
		outReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(outReq)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	if attemptFromContext(req.Context()) == attemptRetried {
		// The renewed token was rejected too; the session is unrecoverable.
		t.expireSession()

		return resp, nil
	}

	newToken, refreshErr := t.refresh(req.Context())
	if refreshErr != nil {
		t.expireSession()

		return resp, nil
	}
	t.session.SetAccessToken(newToken)

	// A replay needs a rewindable body. The renewal above still counts: the
	// caller sees this 401, but the session now holds a fresh token so the
	// next request goes through.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	// The original 401 response is replaced by the replay's.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	// Replay through RoundTrip itself so the fresh token is attached and the
	// Retried tag terminates the recursion after at most one replay.
	retryReq := req.Clone(withAttempt(req.Context(), attemptRetried))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, errors.Wrap(err, "failed to rewind request body for replay")
		}
		retryReq.Body = body
	}

	return t.RoundTrip(retryReq)
}

// refresh exchanges the cookie-jar refresh token for a new access token.
func (t *renewalTransport) refresh(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build refresh request")
	}

	resp, err := t.refreshClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "refresh request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var envelope struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", errors.Wrap(err, "failed to decode refresh response")
	}
	if envelope.Data.AccessToken == "" {
		return "", errors.New("refresh response carried no access token")
	}

	return envelope.Data.AccessToken, nil
}

func (t *renewalTransport) expireSession() {
	t.session.Clear()
	if t.onSessionExpired != nil {
		t.onSessionExpired()
	}
}
