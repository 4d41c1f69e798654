package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	reply  string
	err    error
	lastID string
}

func (f *fakeSender) Send(_ context.Context, userID, _ string) (string, error) {
	f.lastID = userID
	return f.reply, f.err
}

type fakeMailer struct {
	mu        sync.Mutex
	err       error
	delivered []string
}

func (f *fakeMailer) Send(subject, body, recipient string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.delivered = append(f.delivered, subject+"|"+body+"|"+recipient)
	return nil
}

func testJob() Job {
	return Job{
		Name:      "daily-tip",
		Spec:      "0 9 * * *",
		Prompt:    "Give one carbon reduction tip.",
		Subject:   "Your EcoTrack daily tip",
		Recipient: "ada@example.com",
	}
}

func TestFireDeliversReply(t *testing.T) {
	sender := &fakeSender{reply: "Cycle to work once a week."}
	mailer := &fakeMailer{}
	n := New(sender, mailer, nil)

	n.Fire(context.Background(), testJob())

	require.Len(t, mailer.delivered, 1)
	assert.Equal(t, "Your EcoTrack daily tip|Cycle to work once a week.|ada@example.com", mailer.delivered[0])
	assert.Equal(t, "notifier:daily-tip", sender.lastID)
}

func TestFireSwallowsCompletionFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	mailer := &fakeMailer{}
	n := New(sender, mailer, nil)

	n.Fire(context.Background(), testJob())

	assert.Empty(t, mailer.delivered, "no mail on completion failure")
}

func TestFireSwallowsMailFailure(t *testing.T) {
	sender := &fakeSender{reply: "tip"}
	mailer := &fakeMailer{err: errors.New("smtp refused")}
	n := New(sender, mailer, nil)

	// Must not panic or propagate.
	n.Fire(context.Background(), testJob())
}

func TestAddValidatesJob(t *testing.T) {
	n := New(&fakeSender{}, &fakeMailer{}, nil)

	err := n.Add(Job{Spec: "0 9 * * *", Recipient: "a@b.co"})
	assert.Error(t, err)

	err = n.Add(Job{Name: "x", Spec: "not a cron spec", Recipient: "a@b.co"})
	assert.Error(t, err)

	err = n.Add(testJob())
	assert.NoError(t, err)
}

func TestStartStop(t *testing.T) {
	n := New(&fakeSender{reply: "tip"}, &fakeMailer{}, nil)
	require.NoError(t, n.Add(testJob()))

	n.Start()
	n.Stop()
}
