/*
Package cliching is an I Ching divination table for the command line and
for embedding.

It simulates the traditional three-coin method: each of the six lines of a
hexagram is classified from three coin tosses (sum 0 = old Yin, 1 = young
Yang, 2 = young Yin, 3 = old Yang), the hexagram's identity is the 6-bit
number with line 1 as the least-significant bit and yang = 1, and a
changing hexagram is derived by flipping the mutable lines the querent
selects. Interpretations come from an embedded corpus in King Wen order.

# Usage

	table, err := cliching.New()
	if err != nil {
		log.Fatal(err)
	}

	hexagram := table.Cast()
	entry, _ := table.Interpret(hexagram)
	fmt.Println(entry.Markdown())

	changed, skipped, err := table.Change(hexagram.MutablePositions())

The core rules live in pkg/divination, the corpus lookup in pkg/oracle.
The cliching binary under cmd/cliching adds the interactive table, a
one-shot cast command, an HTTP API and an MCP server on top.
*/
package cliching
