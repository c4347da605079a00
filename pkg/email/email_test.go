package email

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESV2SenderBuildsMessage(t *testing.T) {
	api := &fakeSES{}
	sender := &SESV2Sender{client: api, fromEmail: "routes@example.com"}

	err := sender.SendEmail(context.Background(), "friend@example.com", "Route", "plain", "<p>html</p>")
	require.NoError(t, err)

	require.NotNil(t, api.input)
	assert.Equal(t, "routes@example.com", aws.ToString(api.input.FromEmailAddress))
	assert.Equal(t, []string{"friend@example.com"}, api.input.Destination.ToAddresses)
	msg := api.input.Content.Simple
	assert.Equal(t, "Route", aws.ToString(msg.Subject.Data))
	assert.Equal(t, "plain", aws.ToString(msg.Body.Text.Data))
	assert.Equal(t, "<p>html</p>", aws.ToString(msg.Body.Html.Data))
}

func TestSESV2SenderWrapsError(t *testing.T) {
	errThrottled := errors.New("throttled")
	sender := &SESV2Sender{client: &fakeSES{err: errThrottled}, fromEmail: "routes@example.com"}

	err := sender.SendEmail(context.Background(), "friend@example.com", "s", "p", "h")
	assert.ErrorIs(t, err, errThrottled)
}

func TestRouteShareTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.GenerateRouteShareEmailHTML(RouteShareData{
		PathName:  "Saturday <errands>",
		Link:      "https://www.google.com/maps/dir/?api=1&origin=Home",
		DriveTime: "10 min",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Saturday &lt;errands&gt;")
	assert.Contains(t, html, `href="https://www.google.com/maps/dir/?api=1&amp;origin=Home"`)
	assert.Contains(t, html, "Estimated drive time: 10 min")
	assert.NotContains(t, html, "Total distance")
}
