/*
Package domain contains the core domain models of the bankocr decoder.

It defines the shapes the scanner produces and the outcomes the decoder reports.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Glyph: the 3x3 block of pipes and underscores that prints one digit.
  - DisplayLine: the 3x27 block that prints one 9-digit account number.
  - Reading: the decoded digits of a line, with illegible positions marked.
  - Entry: one scanned entry together with its Reading and Status.
  - Batch: the entries decoded from one scanner file.
*/
package domain
