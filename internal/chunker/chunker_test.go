package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_InvalidMaxSize(t *testing.T) {
	_, err := Split("text", 0)
	assert.Error(t, err)
	_, err = Split("text", -5)
	assert.Error(t, err)
}

func TestSplit_EmptyText(t *testing.T) {
	chunks, err := Split("", 4000)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplit_SingleSmallText(t *testing.T) {
	chunks, err := Split("hello world", 4000)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplit_ParagraphsStayWhole(t *testing.T) {
	a := strings.Repeat("a", 30)
	b := strings.Repeat("b", 30)
	c := strings.Repeat("c", 30)
	chunks, err := Split(a+"\n\n"+b+"\n\n"+c, 70)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, a+"\n\n"+b, chunks[0])
	assert.Equal(t, c, chunks[1])

	// No paragraph is ever split across two chunks.
	for _, chunk := range chunks {
		for _, p := range strings.Split(chunk, "\n\n") {
			assert.Contains(t, []string{a, b, c}, p)
		}
	}
}

func TestSplit_OversizedParagraphKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 5000)
	chunks, err := Split(long, 4000)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, long, chunks[0])
}

func TestSplit_OversizedParagraphIsolated(t *testing.T) {
	long := strings.Repeat("x", 5000)
	chunks, err := Split("intro\n\n"+long+"\n\noutro", 4000)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "intro", chunks[0])
	assert.Equal(t, long, chunks[1])
	assert.Equal(t, "outro", chunks[2])
}

func TestSplit_OrderPreserved(t *testing.T) {
	paragraphs := []string{"first", "second", "third", "fourth", "fifth"}
	text := strings.Join(paragraphs, "\n\n")
	chunks, err := Split(text, 14)
	require.NoError(t, err)

	var reassembled []string
	for _, chunk := range chunks {
		reassembled = append(reassembled, strings.Split(chunk, "\n\n")...)
	}
	assert.Equal(t, paragraphs, reassembled)
}

func TestSplit_RunesNotBytes(t *testing.T) {
	// Ten Arabic letters occupy twenty bytes but count as ten units.
	p := strings.Repeat("ك", 10)
	chunks, err := Split(p+"\n\n"+p, 25)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestSplit_GreedyAccumulation(t *testing.T) {
	// 1800+2 + 1800 exceeds 4000 only with the third paragraph.
	p := strings.Repeat("y", 1800)
	chunks, err := Split(p+"\n\n"+p+"\n\n"+p, 4000)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, p+"\n\n"+p, chunks[0])
	assert.Equal(t, p, chunks[1])
}
