package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFriendService struct {
	service.FriendService

	sendFriendRequestFn func(context.Context, string, *dto.SendFriendRequestRequest) (*dto.FriendStatusResponse, error)
	acceptFn            func(context.Context, string, string) error
	checkStatusFn       func(context.Context, string, string) (*dto.FriendStatusResponse, error)
}

func (f *fakeFriendService) SendFriendRequest(ctx context.Context, fromUUID string, req *dto.SendFriendRequestRequest) (*dto.FriendStatusResponse, error) {
	if f.sendFriendRequestFn == nil {
		return &dto.FriendStatusResponse{}, nil
	}
	return f.sendFriendRequestFn(ctx, fromUUID, req)
}

func (f *fakeFriendService) AcceptFriendRequest(ctx context.Context, userUUID, requestUUID string) error {
	if f.acceptFn == nil {
		return nil
	}
	return f.acceptFn(ctx, userUUID, requestUUID)
}

func (f *fakeFriendService) CheckFriendStatus(ctx context.Context, userUUID, peerUUID string) (*dto.FriendStatusResponse, error) {
	if f.checkStatusFn == nil {
		return &dto.FriendStatusResponse{}, nil
	}
	return f.checkStatusFn(ctx, userUUID, peerUUID)
}

var handlerTestOnce sync.Once

func initHandlerTest() {
	handlerTestOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
		gin.SetMode(gin.TestMode)
	})
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newAuthedContext(t *testing.T, w *httptest.ResponseRecorder, method, target, body string) *gin.Context {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_uuid", "u_1")
	return c
}

func TestFriendHandlerSendFriendRequest(t *testing.T) {
	initHandlerTest()

	t.Run("unauthorized_without_user", func(t *testing.T) {
		h := NewFriendHandler(&fakeFriendService{})
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodPost, "/api/v1/auth/friend/request", bytes.NewBufferString("{}"))
		require.NoError(t, err)
		c, _ := gin.CreateTestContext(w)
		c.Request = req

		h.SendFriendRequest(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, consts.CodeUnauthorized, decodeEnvelope(t, w).Code)
	})

	t.Run("bind_failed", func(t *testing.T) {
		h := NewFriendHandler(&fakeFriendService{})
		w := httptest.NewRecorder()
		c := newAuthedContext(t, w, http.MethodPost, "/api/v1/auth/friend/request", `{"message":"缺 toUuid"}`)

		h.SendFriendRequest(c)
		assert.Equal(t, consts.CodeParamError, decodeEnvelope(t, w).Code)
	})

	t.Run("business_error_passthrough", func(t *testing.T) {
		h := NewFriendHandler(&fakeFriendService{
			sendFriendRequestFn: func(_ context.Context, _ string, _ *dto.SendFriendRequestRequest) (*dto.FriendStatusResponse, error) {
				return nil, errs.New(consts.CodeAlreadyFriend)
			},
		})
		w := httptest.NewRecorder()
		c := newAuthedContext(t, w, http.MethodPost, "/api/v1/auth/friend/request", `{"toUuid":"u_2"}`)

		h.SendFriendRequest(c)
		assert.Equal(t, consts.CodeAlreadyFriend, decodeEnvelope(t, w).Code)
	})

	t.Run("custom_message_kept", func(t *testing.T) {
		h := NewFriendHandler(&fakeFriendService{
			sendFriendRequestFn: func(_ context.Context, _ string, _ *dto.SendFriendRequestRequest) (*dto.FriendStatusResponse, error) {
				return nil, errs.Newf(consts.CodePermissionDeny, "对方已将你拉黑")
			},
		})
		w := httptest.NewRecorder()
		c := newAuthedContext(t, w, http.MethodPost, "/api/v1/auth/friend/request", `{"toUuid":"u_2"}`)

		h.SendFriendRequest(c)
		body := decodeEnvelope(t, w)
		assert.Equal(t, consts.CodePermissionDeny, body.Code)
		assert.Equal(t, "对方已将你拉黑", body.Message)
	})

	t.Run("success", func(t *testing.T) {
		h := NewFriendHandler(&fakeFriendService{
			sendFriendRequestFn: func(_ context.Context, fromUUID string, req *dto.SendFriendRequestRequest) (*dto.FriendStatusResponse, error) {
				require.Equal(t, "u_1", fromUUID)
				require.Equal(t, "u_2", req.ToUUID)
				return &dto.FriendStatusResponse{Status: dto.FriendStatusPending}, nil
			},
		})
		w := httptest.NewRecorder()
		c := newAuthedContext(t, w, http.MethodPost, "/api/v1/auth/friend/request", `{"toUuid":"u_2","message":"你好"}`)

		h.SendFriendRequest(c)
		body := decodeEnvelope(t, w)
		assert.Equal(t, consts.CodeSuccess, body.Code)
		assert.Contains(t, string(body.Data), dto.FriendStatusPending)
	})
}

func TestFriendHandlerAcceptFriendRequest(t *testing.T) {
	initHandlerTest()

	t.Run("missing_path_param", func(t *testing.T) {
		h := NewFriendHandler(&fakeFriendService{})
		w := httptest.NewRecorder()
		c := newAuthedContext(t, w, http.MethodPost, "/api/v1/auth/friend/request//accept", "")

		h.AcceptFriendRequest(c)
		assert.Equal(t, consts.CodeParamError, decodeEnvelope(t, w).Code)
	})

	t.Run("success", func(t *testing.T) {
		var gotRequestUUID string
		h := NewFriendHandler(&fakeFriendService{
			acceptFn: func(_ context.Context, userUUID, requestUUID string) error {
				require.Equal(t, "u_1", userUUID)
				gotRequestUUID = requestUUID
				return nil
			},
		})
		w := httptest.NewRecorder()
		c := newAuthedContext(t, w, http.MethodPost, "/api/v1/auth/friend/request/fr_1/accept", "")
		c.Params = gin.Params{{Key: "uuid", Value: "fr_1"}}

		h.AcceptFriendRequest(c)
		assert.Equal(t, consts.CodeSuccess, decodeEnvelope(t, w).Code)
		assert.Equal(t, "fr_1", gotRequestUUID)
	})
}

func TestFriendHandlerCheckFriendStatus(t *testing.T) {
	initHandlerTest()

	h := NewFriendHandler(&fakeFriendService{
		checkStatusFn: func(_ context.Context, userUUID, peerUUID string) (*dto.FriendStatusResponse, error) {
			require.Equal(t, "u_1", userUUID)
			require.Equal(t, "u_2", peerUUID)
			return &dto.FriendStatusResponse{Status: dto.FriendStatusFriend}, nil
		},
	})
	w := httptest.NewRecorder()
	c := newAuthedContext(t, w, http.MethodGet, "/api/v1/auth/friend/status/u_2", "")
	c.Params = gin.Params{{Key: "uuid", Value: "u_2"}}

	h.CheckFriendStatus(c)
	body := decodeEnvelope(t, w)
	assert.Equal(t, consts.CodeSuccess, body.Code)
	assert.Contains(t, string(body.Data), dto.FriendStatusFriend)
}
