// Package wordlist loads the answer and allowed-guess vocabularies.
//
// Two lists are kept: "answers" are the words a duel's solution is drawn
// from, and "allowed" is the larger set of words accepted as guesses.
// Answers are always allowed. Lists load from files named in the
// configuration, falling back to embedded defaults so the server starts
// with no files configured.
package wordlist

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
)

//go:embed default_answers.txt
var embeddedAnswers string

//go:embed default_allowed.txt
var embeddedAllowed string

// List holds the loaded vocabularies for one word length.
type List struct {
	wordLength int
	answers    []string
	answerSet  map[string]struct{}
	allowedSet map[string]struct{}
}

// Load builds a List for wordLength. If answersPath is empty the embedded
// default answers are used; if allowedPath is empty the embedded default
// allowed list is used. Words of the wrong length or with non-letter
// characters are skipped.
func Load(wordLength int, answersPath, allowedPath string) (*List, error) {
	answers, err := loadWords(answersPath, embeddedAnswers, wordLength)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	allowed, err := loadWords(allowedPath, embeddedAllowed, wordLength)
	if err != nil {
		return nil, fmt.Errorf("load allowed: %w", err)
	}
	if len(answers) == 0 {
		return nil, errors.New("wordlist: answers list is empty")
	}

	l := &List{
		wordLength: wordLength,
		answers:    answers,
		answerSet:  toSet(answers),
		allowedSet: toSet(answers),
	}
	for _, w := range allowed {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
}

// RandomAnswer returns a cryptographically random word from the answers list.
func (l *List) RandomAnswer() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	return l.answers[n.Int64()]
}

// IsAllowed reports whether w is accepted as a guess.
func (l *List) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToUpper(w)]
	return ok
}

// IsAnswer reports whether w can appear as a solution.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answerSet[strings.ToUpper(w)]
	return ok
}

// Stats returns the loaded word counts: (answers, allowed).
func (l *List) Stats() (answers, allowed int) {
	return len(l.answers), len(l.allowedSet)
}

func loadWords(path, embedded string, wordLength int) ([]string, error) {
	if path == "" {
		return normalizeLines(embedded, wordLength), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := normalize(sc.Text(), wordLength); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

func normalizeLines(s string, wordLength int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, ok := normalize(line, wordLength); ok {
			out = append(out, w)
		}
	}
	return out
}

func normalize(line string, wordLength int) (string, bool) {
	w := strings.ToUpper(strings.TrimSpace(line))
	if len(w) != wordLength || !isAlpha(w) {
		return "", false
	}
	return w, true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}
