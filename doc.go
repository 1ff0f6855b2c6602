/*
Package bankocr decodes the account numbers printed by a bank's document scanning machine.

The machine produces a file of entries, each three rows of pipes and underscores
27 characters wide, spelling a 9-digit account number in seven-segment style.
This entry reads 490067715:

	    _  _  _  _  _  _     _
	|_||_|| || ||_   |  |  ||_
	  | _||_||_||_|  |  |  | _|

The Engine scans such files, decodes every entry, classifies it (OK, ERR for a
failed checksum, ILL for unreadable digits, INV for malformed lines) and keeps
the resulting batch in a store. The decoding core itself lives in package ocr
and can be used on its own.

# Usage

	eng := bankocr.New(bankocr.WithLogger(logging.New(slog.LevelInfo)))

	batch, err := eng.DecodeFile(ctx, "scans/2024-03-01.txt")
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range batch.Entries {
		fmt.Println(report.FormatEntry(e))
	}

Adapters expose the same Engine over HTTP (pkg/adapters/http) and the Model
Context Protocol (pkg/adapters/mcp), and persist batches in memory or Redis.
*/
package bankocr
