package vocabgo

import "errors"

var (
	// ErrClosed is returned when operating on a closed model.
	ErrClosed = errors.New("vocabgo: model is closed")

	// ErrFinished is returned when inserting into a finished builder.
	ErrFinished = errors.New("vocabgo: builder already finished")

	// ErrTooManyEntries is returned when inserts exceed the entry count the
	// builder was created with.
	ErrTooManyEntries = errors.New("vocabgo: insert exceeds expected entry count")

	// ErrMemoryBudget is returned when the resource controller denies the
	// memory a vocabulary region needs.
	ErrMemoryBudget = errors.New("vocabgo: memory budget exceeded")
)
