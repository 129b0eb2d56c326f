package main

import (
	"flag"
	"log"
	"os"

	"github.com/mapaware/cssparse"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "Path to the CSS-dialect file to parse")
		queryType  = flag.String("query-type", "", "Restrict -query-name to one selector kind: class, id or asterisk")
		queryName  = flag.String("query-name", "", "Print only the selectors matching this name (without the leading '.'/'#')")
		applyFlags = flag.Bool("apply-flags", false, "OR flag-declaration keys into their enclosing selector's flags before printing")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("Input path not informed")
	}

	f, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("Can't open input file: %s", err.Error())
	}
	defer f.Close()

	buf, err := cssparse.NewStringFromReader(f)
	if err != nil {
		log.Fatalf("Can't read input file: %s", err.Error())
	}

	table, err := cssparse.Parse(buf)
	if err != nil {
		log.Fatalf("Can't parse input file: %s", err.Error())
	}

	if *applyFlags {
		table, err = cssparse.ApplyDeclaredFlags(table)
		if err != nil {
			log.Fatalf("Can't apply declared flags: %s", err.Error())
		}
	}

	if *queryName != "" {
		typ := selectorTypeFromFlag(*queryType)
		nodes, err := table.QueryClass(typ, []byte(*queryName))
		if err != nil {
			log.Fatalf("Query failed: %s", err.Error())
		}
		for _, n := range nodes {
			b, err := n.Bytes()
			if err != nil {
				log.Fatalf("Can't read match: %s", err.Error())
			}
			os.Stdout.Write(b)
			os.Stdout.WriteString("\n")
		}
		return
	}

	if err := table.Print(os.Stdout); err != nil {
		log.Fatalf("Can't print table: %s", err.Error())
	}
}

func selectorTypeFromFlag(name string) cssparse.KeyType {
	switch name {
	case "id":
		return cssparse.KeyTypeID
	case "asterisk":
		return cssparse.KeyTypeAsterisk
	default:
		return cssparse.KeyTypeClass
	}
}
