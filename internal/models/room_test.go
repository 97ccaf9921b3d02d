package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemovePlayerReassignsHost(t *testing.T) {
	host := &Player{ID: uuid.New(), Nickname: "a"}
	r := NewRoom("ABCD", host)
	second := &Player{ID: uuid.New(), Nickname: "b"}
	third := &Player{ID: uuid.New(), Nickname: "c"}
	r.AddPlayer(second)
	r.AddPlayer(third)

	removed := r.RemovePlayer(host.ID)
	require.Same(t, host, removed)
	require.Len(t, r.Players, 2)
	assert.True(t, second.IsHost, "earliest remaining joiner becomes host")
	assert.False(t, third.IsHost)
}

func TestRemovePlayerUnknown(t *testing.T) {
	r := NewRoom("ABCD", &Player{ID: uuid.New()})
	assert.Nil(t, r.RemovePlayer(uuid.New()))
	assert.Len(t, r.Players, 1)
}

func TestRoundCounts(t *testing.T) {
	author := uuid.New()
	r := NewRoom("ABCD", &Player{ID: author})
	r.Sentences = append(r.Sentences,
		Sentence{AuthorID: author, Text: "x", Round: 1},
		Sentence{AuthorID: author, Text: "y", Round: 2},
	)
	r.Drawings = append(r.Drawings, Drawing{AuthorID: author, Image: "zz", Round: 2})

	assert.Equal(t, 1, r.SentenceCount(1))
	assert.Equal(t, 1, r.SentenceCount(2))
	assert.Equal(t, 0, r.DrawingCount(1))
	assert.Equal(t, 1, r.DrawingCount(2))
}

func TestReset(t *testing.T) {
	host := &Player{ID: uuid.New(), IsReady: true}
	r := NewRoom("ABCD", host)
	r.Phase = PhaseResults
	r.CurrentRound = 3
	r.Sentences = []Sentence{{AuthorID: host.ID, Text: "x", Round: 1}}
	r.Drawings = []Drawing{{AuthorID: host.ID, Image: "y", Round: 1}}
	r.Presentation = Presentation{Active: true, CurrentIndex: 2}

	r.Reset()

	assert.Equal(t, PhaseLobby, r.Phase)
	assert.Equal(t, 0, r.CurrentRound)
	assert.Empty(t, r.Sentences)
	assert.Empty(t, r.Drawings)
	assert.Equal(t, Presentation{}, r.Presentation)
	assert.False(t, host.IsReady)
	assert.True(t, host.IsHost, "reset does not touch host assignment")
}
