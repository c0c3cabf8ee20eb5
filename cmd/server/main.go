// Command server serves the result logs as JSON.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/z3rotig4r/he_opbench/server"
	"github.com/z3rotig4r/he_opbench/sweep"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	scalarLog := flag.String("scalar-log", sweep.ScalarLogPath, "scalar sweep log")
	vectorLog := flag.String("vector-log", sweep.VectorLogPath, "vector sweep log")
	flag.Parse()

	handler := server.New(map[sweep.Variant]string{
		sweep.Scalar: *scalarLog,
		sweep.Vector: *vectorLog,
	}).Handler()

	// HTTPS when a certificate pair is present next to the binary
	certFile := "server.crt"
	keyFile := "server.key"
	useHTTPS := fileExists(certFile) && fileExists(keyFile)

	if useHTTPS {
		log.Printf("🔒 Server starting with HTTPS on https://localhost%s", *addr)
		log.Printf("📊 Serving %s and %s", *scalarLog, *vectorLog)

		if err := http.ListenAndServeTLS(*addr, certFile, keyFile, handler); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Printf("⚠️  Server starting with HTTP on http://localhost%s", *addr)
		log.Printf("📊 Serving %s and %s", *scalarLog, *vectorLog)

		if err := http.ListenAndServe(*addr, handler); err != nil {
			log.Fatal(err)
		}
	}
}

// fileExists reports whether filename exists and is not a directory.
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
