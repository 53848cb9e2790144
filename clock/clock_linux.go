package clock

import "golang.org/x/sys/unix"

// Boottime is Monotonic plus time spent suspended.
const Boottime ID = unix.CLOCK_BOOTTIME
