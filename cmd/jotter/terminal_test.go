package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jotterhq/jotter/pkg/core"
)

func notifierFor(input string) (*terminalNotifier, *bytes.Buffer) {
	var out bytes.Buffer
	return &terminalNotifier{in: bufio.NewReader(strings.NewReader(input)), out: &out}, &out
}

func TestConfirmAnswers(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"Yes", "y\n", true},
		{"Yes Word", "YES\n", true},
		{"No", "n\n", false},
		{"Empty Defaults To No", "\n", false},
		{"Closed Stdin Defaults To No", "", false},
		{"Garbage Defaults To No", "sure\n", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, out := notifierFor(tc.input)
			got, err := n.Confirm(context.Background(), "Delete it?")
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Contains(t, out.String(), "Delete it? [y/N]")
		})
	}
}

func TestChooseOnePicksByNumber(t *testing.T) {
	n, out := notifierFor("2\n")
	choice, ok, err := n.ChooseOne(context.Background(), "Choose a template", []string{"blank", "meeting", "daily"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "meeting", choice)
	require.Contains(t, out.String(), "2) meeting")
}

func TestChooseOneEmptyDeclines(t *testing.T) {
	n, _ := notifierFor("\n")
	_, ok, err := n.ChooseOne(context.Background(), "Choose a template", []string{"blank"})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestChooseOneRejectsOutOfRange(t *testing.T) {
	n, _ := notifierFor("7\n")
	_, _, err := n.ChooseOne(context.Background(), "Choose a template", []string{"blank"})
	require.Error(t, err)
}

func TestNotifyPrefixesSeverity(t *testing.T) {
	n, out := notifierFor("")
	n.Notify(context.Background(), "Note created: Hello", core.SeveritySuccess)
	require.Equal(t, "success: Note created: Hello\n", out.String())
}
