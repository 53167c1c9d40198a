package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"project_report_bot/internal/domain/notify"
	"project_report_bot/internal/domain/store"

	"github.com/sirupsen/logrus"
)

// fakeStore serves one in-memory document and records saves.
type fakeStore struct {
	doc       *store.Document
	loadErr   error
	saveCount int
}

func newFakeStore(doc *store.Document) *fakeStore {
	return &fakeStore{doc: doc}
}

func (f *fakeStore) Load(context.Context) (*store.Document, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.doc, nil
}

func (f *fakeStore) Save(_ context.Context, doc *store.Document) error {
	f.saveCount++
	f.doc = doc
	return nil
}

type sentMessage struct {
	target string // user or channel id
	msg    notify.Message
}

// fakeNotifier records deliveries and can be told to fail.
type fakeNotifier struct {
	dms      []sentMessage
	channels []sentMessage
	failDM   bool
	failCh   bool
}

func (f *fakeNotifier) SendDirectMessage(userID string, msg notify.Message) error {
	if f.failDM {
		return fmt.Errorf("dm delivery failed")
	}
	f.dms = append(f.dms, sentMessage{target: userID, msg: msg})
	return nil
}

func (f *fakeNotifier) SendChannelMessage(channelID string, msg notify.Message) error {
	if f.failCh {
		return fmt.Errorf("channel delivery failed")
	}
	f.channels = append(f.channels, sentMessage{target: channelID, msg: msg})
	return nil
}

// fixedClock always reports the same instant.
type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func chicago() *time.Location {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		panic(err)
	}
	return loc
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("component", "test")
}

func boolPtr(b bool) *bool { return &b }
