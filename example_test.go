package signalsafe_test

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/signalsafe"
	"github.com/hupe1980/signalsafe/file"
	"github.com/hupe1980/signalsafe/format"
	"github.com/hupe1980/signalsafe/record"
)

// Example_recordAndDecode writes two records and reads them back.
func Example_recordAndDecode() {
	dir, err := os.MkdirTemp("", "signalsafe-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "app.dump")

	w := file.CreateAndOpen(path, file.WriteOnly)
	rec, err := signalsafe.NewRecorder(w)
	if err != nil {
		log.Fatal(err)
	}

	rec.Record(unix.SIGUSR1, "queue % has % items", format.String("ingest"), format.Int(42))
	rec.Record(unix.SIGQUIT, "shutting down")
	w.Destroy()

	r := file.OpenExisting(path, file.ReadOnly)
	defer r.Destroy()

	buf := make([]byte, record.Size(signalsafe.DefaultMaxMessageSize))
	for {
		got, err := record.ReadNext(r, buf)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d %s %s\n", got.Seq, unix.SignalName(unix.Signal(got.Signal)), got.Message)
	}

	// Output:
	// 1 SIGUSR1 queue ingest has 42 items
	// 2 SIGQUIT shutting down
}

// Example_format renders a template into a fixed buffer.
func Example_format() {
	var buf [32]byte

	n := format.Format("fd=% path=%", buf[:], format.Int(3), format.String("/tmp/x"))
	fmt.Println(string(buf[:n]))

	// Output: fd=3 path=/tmp/x
}
