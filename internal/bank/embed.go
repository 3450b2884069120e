package bank

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed data/default.csv
var defaultCSV []byte

// Default returns the bank compiled into the binary. It covers Aptitude,
// English and GK, labelled on the five-level scale of DefaultLevelNames.
// Pass WithLevelNames to place the questions on another policy's scale.
func Default(opts ...LoadOption) (*Set, error) {
	set, err := ReadCSV(bytes.NewReader(defaultCSV), opts...)
	if err != nil {
		return nil, fmt.Errorf("embedded bank: %w", err)
	}
	return set, nil
}
