package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features lists the SIMD extensions detected on the host CPU.
// The kernels do not dispatch on them; the list is reported by the CLI.
func Features() []string {
	var out []string
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasAVX2 {
			out = append(out, "avx2")
		}
		if cpu.X86.HasFMA {
			out = append(out, "fma")
		}
		if cpu.X86.HasAVX512F {
			out = append(out, "avx512f")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			out = append(out, "asimd")
		}
	}
	return out
}
