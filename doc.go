// Package signalsafe records diagnostic dumps from code that cannot afford
// to allocate, lock or fail softly, such as work triggered by a signal.
//
// The building blocks live in subpackages:
//
//   - file: an owner for exactly one file descriptor with EINTR-transparent
//     I/O and a bounded, NUL-terminated path buffer.
//   - format: an allocation-free "%" template formatter.
//   - memory: byte movers for disjoint and overlapping ranges.
//   - clock: clock readings and their fixed-size encoding.
//   - record: the CRC-framed binary dump record.
//   - fatal: the fatal error tier used by all of the above.
//
// A [Recorder] ties them together:
//
//	f := file.CreateAndOpen("/var/tmp/app.dump", file.WriteOnly)
//	defer f.Destroy()
//
//	rec, err := signalsafe.NewRecorder(f,
//	    signalsafe.WithSignals(unix.SIGUSR1, unix.SIGQUIT),
//	    signalsafe.WithRateLimit(5, 0),
//	    signalsafe.WithLogger(signalsafe.NewTextLogger(slog.LevelInfo)),
//	)
//	if err != nil {
//	    return err
//	}
//	defer rec.Close()
//
//	go rec.Run(ctx)
//
//	rec.Record(0, "checkpoint % reached", format.Int(n))
//
// # Errors
//
// Formatting and writing a record report unrecoverable conditions through
// [fatal.Fail], which panics with a [fatal.Error]. Run converts such a
// failure into a returned error; other callers can use [fatal.Recover].
// Setup and decoding return ordinary errors.
package signalsafe
