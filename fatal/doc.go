// Package fatal implements the fail-fast error tier shared by the
// signal-safe packages.
//
// Operations in [file], [clock] and [format] distinguish two kinds of
// failure:
//
//   - Interruption (EINTR) is expected and retried silently.
//   - Everything else is a contract violation and stops execution at the
//     point of detection via [Fail].
//
// Operations where "nothing to do" is a legitimate outcome (closing an
// unset file, removing a file without a path) report it as a plain bool
// instead, so the two tiers never share a return channel.
//
// [Fail] panics with an [Error] value. The value is a small comparable
// struct: no message is formatted at the failure site. Supervisors that
// must survive a fatal condition (tests, crash reporters) can convert it
// back into a value with [Recover].
//
// [file]: github.com/hupe1980/signalsafe/file
// [clock]: github.com/hupe1980/signalsafe/clock
// [format]: github.com/hupe1980/signalsafe/format
package fatal
