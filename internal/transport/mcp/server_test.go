package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/pastcast/internal/service/chat"
	"github.com/sandevgo/pastcast/internal/service/climate"
	"github.com/sandevgo/pastcast/internal/service/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	sessions []string
}

func (f *fakeChat) Handle(_ context.Context, sessionID, text string) chat.Exchange {
	f.sessions = append(f.sessions, sessionID)
	return chat.Exchange{Reply: "answer to " + text, Intent: router.IntentWikipedia}
}

type midRand struct{}

func (midRand) Float64() float64 { return 0.5 }
func (midRand) IntN(int) int     { return 7 }

func TestHandleAsk(t *testing.T) {
	fc := &fakeChat{}
	s := NewServer(fc, climate.NewEstimator(midRand{}))
	ctx := context.Background()

	res, err := s.handleAsk(ctx, mcp.CallToolRequest{}, AskArgs{Question: " Who is Ada Lovelace? "})
	require.NoError(t, err)
	assert.Equal(t, "answer to Who is Ada Lovelace?", res.Reply)
	assert.Equal(t, "wikipedia", res.Intent)
	assert.True(t, strings.HasPrefix(res.SessionID, "mcp-"))

	res, err = s.handleAsk(ctx, mcp.CallToolRequest{}, AskArgs{Question: "hi", SessionID: "own"})
	require.NoError(t, err)
	assert.Equal(t, "own", res.SessionID)

	_, err = s.handleAsk(ctx, mcp.CallToolRequest{}, AskArgs{Question: "  "})
	assert.Error(t, err)
	assert.Len(t, fc.sessions, 2)
}

func TestHandleProbability(t *testing.T) {
	s := NewServer(&fakeChat{}, climate.NewEstimator(midRand{}))

	rep, err := s.handleProbability(context.Background(), mcp.CallToolRequest{}, ProbabilityArgs{
		Name:      "Delhi",
		StartDate: "2024-12-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Delhi", rep.Location.CityName)
	assert.Equal(t, 15.0, rep.Probabilities.Rain.Probability)
	assert.Equal(t, 107, rep.Probabilities.Summary.DataPoints)

	_, err = s.handleProbability(context.Background(), mcp.CallToolRequest{}, ProbabilityArgs{Name: "Delhi"})
	assert.ErrorContains(t, err, climate.MsgMissingStartDate)
}
