// Package dataprocessing reads employee timesheet files.
//
// # Input Format
//
// A source is a UTF-8 text file whose name ends in ".csv". The first line is a header
// naming the columns; every later non-blank line is one employee. Values are split on
// commas with no quoting, and surrounding whitespace is trimmed from each line.
//
// Header names are normalized before use:
//
//	id, email, name, department, hours_worked   used as-is
//	hourly_rate, rate, salary                   all mean hourly_rate
//
// When several rate synonyms are present the left-most one wins. A column named more
// than once reads its right-most value. Unknown columns are ignored and a leading UTF-8
// byte order mark is dropped.
//
// # Usage
//
//	p, err := dataprocessing.NewCSVParser("data1.csv")
//	if err != nil {
//	    return err // wrong suffix, nothing was opened
//	}
//	employees, err := p.ParseEmployees(ctx)
//
// A missing column, a short row, or a non-integer hours or rate value aborts the parse;
// no partial result is returned. Negative values are rejected only when a validator is
// supplied with WithValidator.
package dataprocessing
