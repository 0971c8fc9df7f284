package slack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/service/slack"
)

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("", "C123")
		gt.Value(t, err).NotNil()
	})

	t.Run("returns error when channel is empty", func(t *testing.T) {
		_, err := slack.New("xoxb-test", "")
		gt.Value(t, err).NotNil()
	})

	t.Run("creates service when token and channel are provided", func(t *testing.T) {
		svc, err := slack.New("xoxb-test", "C123")
		gt.NoError(t, err).Required()
		gt.Value(t, svc).NotNil()
	})
}

func TestExportTitle(t *testing.T) {
	title := slack.ExportTitle(&model.ExportFile{Screen: types.ScreenPOsPaid, FileName: "POs_Paid_Inquiry_2025-01-02.xlsx"})
	gt.Value(t, title).Equal(types.ScreenPOsPaid.Title() + " (POs_Paid_Inquiry_2025-01-02.xlsx)")
}

func TestShareRejectsEmptyFile(t *testing.T) {
	svc, err := slack.New("xoxb-test", "C123")
	gt.NoError(t, err).Required()

	_, err = svc.Share(context.Background(), &model.ExportFile{FileName: "empty.csv"}, "")
	gt.Value(t, err).NotNil()
}

func TestGetChannelNamesCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":{"id":"C123","name":"procurement-exports"}}`))
	}))
	defer srv.Close()

	svc, err := slack.New("xoxb-test", "C123",
		slack.WithAPIURL(srv.URL+"/"),
		slack.TestWithCacheTTL(time.Minute),
	)
	gt.NoError(t, err).Required()

	ctx := context.Background()
	names, err := svc.GetChannelNames(ctx, []string{"C123"})
	gt.NoError(t, err).Required()
	gt.Value(t, names["C123"]).Equal("procurement-exports")

	_, err = svc.GetChannelNames(ctx, []string{"C123"})
	gt.NoError(t, err).Required()
	gt.Value(t, calls.Load()).Equal(int32(1))
}

func TestIntegration(t *testing.T) {
	token := os.Getenv("TEST_SLACK_BOT_TOKEN")
	channel := os.Getenv("TEST_SLACK_CHANNEL_ID")
	if token == "" || channel == "" {
		t.Skip("TEST_SLACK_BOT_TOKEN or TEST_SLACK_CHANNEL_ID is not set")
	}

	svc, err := slack.New(token, channel)
	gt.NoError(t, err).Required()

	file := &model.ExportFile{
		Screen:   types.ScreenPOItems,
		Format:   types.ExportFormatCSV,
		FileName: "PO_Items_Export_test.csv",
		Rows:     1,
		Data:     []byte("PO Number,Item Number\r\nPO1,ITM001\r\n"),
	}
	ref, err := svc.Share(context.Background(), file, "integration test export")
	gt.NoError(t, err).Required()
	gt.String(t, ref).NotEqual("")
	t.Logf("Shared to %s", ref)
}
