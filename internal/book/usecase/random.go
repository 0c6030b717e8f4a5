package usecase

import (
	"math/rand/v2"
	"strconv"
	"strings"

	bookDomain "github.com/allisson/gatekeeper/internal/book/domain"
)

var (
	randomWords = []string{
		"amber", "brook", "cinder", "dusk", "ember", "fable", "grove", "harbor",
		"ivory", "juniper", "kestrel", "lantern", "meadow", "nectar", "orchard", "pebble",
		"quill", "raven", "saffron", "thistle", "umber", "velvet", "willow", "zephyr",
	}
	randomShelves = []string{"fiction", "history", "poetry", "science", "travel"}
)

func randomWord() string {
	return randomWords[rand.IntN(len(randomWords))]
}

func randomPhrase(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = randomWord()
	}
	return strings.Join(parts, " ")
}

// randomISBN returns a "978" ISBN-13 with a correct check digit.
func randomISBN() string {
	var b strings.Builder
	b.WriteString("978")
	for range 9 {
		b.WriteString(strconv.Itoa(rand.IntN(10)))
	}

	sum := 0
	for i, r := range b.String() {
		digit := int(r - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	b.WriteString(strconv.Itoa((10 - sum%10) % 10))

	return b.String()
}

func randomInput() *bookDomain.Input {
	isbn := randomISBN()
	title := randomPhrase(3)
	return &bookDomain.Input{
		Title:       strings.ToUpper(title[:1]) + title[1:],
		Author:      randomWord() + " " + randomWord(),
		ISBN:        isbn,
		ImageURL:    "https://covers.openlibrary.org/b/isbn/" + isbn + "-L.jpg",
		Description: randomPhrase(12),
		Bookshelf:   randomShelves[rand.IntN(len(randomShelves))],
	}
}
