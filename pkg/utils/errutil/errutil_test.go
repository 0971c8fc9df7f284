package errutil_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/utils/errutil"
)

type listErr []string

func (e listErr) Error() string     { return "list error" }
func (e listErr) Details() []string { return e }

func decode(t *testing.T, rec *httptest.ResponseRecorder) errutil.ErrorResponse {
	t.Helper()
	var resp errutil.ErrorResponse
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	return resp
}

func TestHandleHTTP(t *testing.T) {
	ctx := context.Background()

	t.Run("client error keeps the message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, rec, goerr.New("unknown screen", goerr.V("screen", "x")), http.StatusNotFound)

		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
		gt.Value(t, rec.Header().Get("Content-Type")).Equal("application/json")
		gt.Value(t, decode(t, rec).Error).Equal("unknown screen")
	})

	t.Run("server error hides internals", func(t *testing.T) {
		rec := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, rec, goerr.New("dial tcp 10.0.0.1:443: refused"), http.StatusBadGateway)

		gt.Value(t, rec.Code).Equal(http.StatusBadGateway)
		gt.Value(t, decode(t, rec).Error).Equal("Bad Gateway")
	})

	t.Run("detail list is returned", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := goerr.Wrap(listErr{"first", "second"}, "validation failed")
		errutil.HandleHTTP(ctx, rec, err, http.StatusBadRequest)

		resp := decode(t, rec)
		gt.Value(t, resp.Errors).Equal([]string{"first", "second"})
		gt.Value(t, resp.Error).Equal("first")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, rec, nil, http.StatusInternalServerError)
		gt.Value(t, rec.Body.Len()).Equal(0)
	})
}

func TestHandle(t *testing.T) {
	gt.Value(t, errutil.Handle(context.Background(), nil, "noop")).Equal(nil)

	err := goerr.New("boom")
	gt.Value(t, errutil.Handle(context.Background(), err, "failed")).Equal(error(err))
}
