package middleware

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/lmxriel/petcare/pkg/jwt"
)

// fakeValidator stands in for the auth service's signature + session-store check
type fakeValidator struct {
	claims *jwt.Claims
	err    error
	tokens []string
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	f.tokens = append(f.tokens, token)
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func runJWTAuth(t *testing.T, validator TokenValidator, header string) *app.RequestContext {
	t.Helper()
	c := app.NewContext(0)
	if header != "" {
		c.Request.Header.Set(AuthorizationHeader, header)
	}
	JWTAuth(validator)(context.Background(), c)
	return c
}

func responseCode(t *testing.T, c *app.RequestContext) int {
	t.Helper()
	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(c.Response.Body(), &body))
	return body.Code
}

func TestJWTAuth_SetsIdentity(t *testing.T) {
	v := &fakeValidator{claims: &jwt.Claims{
		UserId:     42,
		Role:       constant.RolePetOwner,
		PlatformId: constant.PlatformIdWeb,
	}}

	c := runJWTAuth(t, v, "Bearer good-token")

	assert.Equal(t, []string{"good-token"}, v.tokens)
	assert.Equal(t, int64(42), GetUserId(c))
	assert.Equal(t, constant.RolePetOwner, GetRole(c))
	assert.Equal(t, constant.PlatformIdWeb, GetPlatformId(c))
	assert.Equal(t, "good-token", GetToken(c))
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	v := &fakeValidator{}

	c := runJWTAuth(t, v, "")

	assert.Empty(t, v.tokens)
	assert.Equal(t, errcode.ErrTokenMissing.Code, responseCode(t, c))
	assert.Zero(t, GetUserId(c))
}

func TestJWTAuth_BadPrefix(t *testing.T) {
	v := &fakeValidator{}

	c := runJWTAuth(t, v, "Token abc")

	assert.Empty(t, v.tokens, "malformed header never reaches the validator")
	assert.Equal(t, errcode.ErrTokenInvalid.Code, responseCode(t, c))
}

func TestJWTAuth_RejectsRevokedToken(t *testing.T) {
	// A token the session store marked logged out or kicked still carries a
	// valid signature; the middleware must reject it anyway
	v := &fakeValidator{err: errcode.ErrTokenInvalid}

	c := runJWTAuth(t, v, "Bearer stale-token")

	assert.Equal(t, []string{"stale-token"}, v.tokens)
	assert.Equal(t, errcode.ErrTokenInvalid.Code, responseCode(t, c))
	assert.Zero(t, GetUserId(c))
}
