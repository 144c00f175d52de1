// meshinspect is a diagnostic utility for Sky mesh assets: it dumps the
// leading header bytes, reports the sniffer verdict and evaluates every
// size-candidate placement against the file.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veilbreaker/skymesh/pkg/mesh"
)

var flagDumpLen = flag.Int("n", 0xC0, "Number of leading bytes to dump")

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshinspect [-n bytes] <file.mesh> [...]")
		os.Exit(1)
	}

	exit := 0
	for _, path := range flag.Args() {
		if err := inspect(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func inspect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("=== %s (%d bytes) ===\n\n", filepath.Base(path), len(data))
	hexDump(data, *flagDumpLen)

	asset := mesh.RawAsset{Data: data, Name: filepath.Base(path)}
	cls := mesh.Sniff(asset)

	fmt.Printf("\nSniffer verdict:\n")
	fmt.Printf("  strategy order:     ")
	for i, s := range cls.Order {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Print(s)
	}
	fmt.Println()
	fmt.Printf("  zip positions:      %v\n", cls.ZipPos)
	fmt.Printf("  compress positions: %v\n", cls.CompressPositions)
	fmt.Printf("  compress uvs:       %v\n", cls.CompressUVs)

	fmt.Printf("\nSize candidates:\n")
	for _, c := range mesh.DefaultSizeCandidates {
		evalCandidate(data, c)
	}
	return nil
}

// evalCandidate prints what one size-candidate placement reads from the
// file and whether the values look usable.
func evalCandidate(data []byte, c mesh.SizeCandidate) {
	label := fmt.Sprintf("comp@0x%02X uncomp@0x%02X data@0x%02X w%d", c.CompOff, c.UncompOff, c.DataOff, c.Width)

	if c.UncompOff+c.Width > len(data) || c.DataOff > len(data) {
		fmt.Printf("  %-36s out of bounds\n", label)
		return
	}

	var cs, us int
	switch c.Width {
	case 4:
		cs = int(binary.LittleEndian.Uint32(data[c.CompOff:]))
		us = int(binary.LittleEndian.Uint32(data[c.UncompOff:]))
	case 2:
		cs = int(binary.LittleEndian.Uint16(data[c.CompOff:]))
		us = int(binary.LittleEndian.Uint16(data[c.UncompOff:]))
	}

	verdict := "plausible"
	switch {
	case cs <= 0 || us <= cs:
		verdict = "sizes not ordered"
	case c.DataOff+cs > len(data):
		verdict = "block exceeds file"
	}
	fmt.Printf("  %-36s comp=%-8d uncomp=%-8d %s\n", label, cs, us, verdict)
}

func hexDump(data []byte, n int) {
	if n > len(data) {
		n = len(data)
	}
	for off := 0; off < n; off += 16 {
		end := off + 16
		if end > n {
			end = n
		}
		fmt.Printf("%08X  ", off)
		for i := off; i < off+16; i++ {
			if i < end {
				fmt.Printf("%02X ", data[i])
			} else {
				fmt.Print("   ")
			}
			if i == off+7 {
				fmt.Print(" ")
			}
		}
		fmt.Print(" |")
		for i := off; i < end; i++ {
			if data[i] >= 0x20 && data[i] < 0x7F {
				fmt.Printf("%c", data[i])
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println("|")
	}
}
