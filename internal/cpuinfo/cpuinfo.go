// Package cpuinfo reports the SIMD capabilities of the host CPU so a
// reader can correlate benchmark results with the vector hardware that
// is actually present before comparing builds.
package cpuinfo

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sys/cpu"
)

// Fprint writes the host report to w: runtime identification first, then
// the architecture-specific SIMD feature flags.
func Fprint(w io.Writer) {
	fmt.Fprintf(w, "GOOS: %s\n", runtime.GOOS)
	fmt.Fprintf(w, "GOARCH: %s\n", runtime.GOARCH)
	fmt.Fprintf(w, "NumCPU: %d\n", runtime.NumCPU())

	switch runtime.GOARCH {
	case "arm64":
		fmt.Fprintln(w)
		fprintARM64(w)
	case "amd64":
		fmt.Fprintln(w)
		fprintAMD64(w)
	}
}

func fprintARM64(w io.Writer) {
	fmt.Fprintln(w, "arm64 vector features:")
	fmt.Fprintf(w, "  ASIMD (NEON): %v\n", cpu.ARM64.HasASIMD)
	fmt.Fprintf(w, "  FP:           %v\n", cpu.ARM64.HasFP)
	fmt.Fprintf(w, "  ASIMDHP:      %v (FP16 NEON, ARMv8.2-A)\n", cpu.ARM64.HasASIMDHP)
	fmt.Fprintf(w, "  ASIMDDP:      %v (dot product, ARMv8.4-A)\n", cpu.ARM64.HasASIMDDP)
	fmt.Fprintf(w, "  SVE:          %v\n", cpu.ARM64.HasSVE)
	fmt.Fprintf(w, "  SVE2:         %v\n", cpu.ARM64.HasSVE2)
	fmt.Fprintf(w, "  ATOMICS:      %v (Large System Extensions)\n", cpu.ARM64.HasATOMICS)
	fmt.Fprintf(w, "  CRC32:        %v\n", cpu.ARM64.HasCRC32)
}

func fprintAMD64(w io.Writer) {
	fmt.Fprintln(w, "amd64 vector features:")
	fmt.Fprintf(w, "  SSE2:    %v\n", cpu.X86.HasSSE2)
	fmt.Fprintf(w, "  SSE41:   %v\n", cpu.X86.HasSSE41)
	fmt.Fprintf(w, "  SSE42:   %v\n", cpu.X86.HasSSE42)
	fmt.Fprintf(w, "  AVX:     %v\n", cpu.X86.HasAVX)
	fmt.Fprintf(w, "  AVX2:    %v\n", cpu.X86.HasAVX2)
	fmt.Fprintf(w, "  AVX512F: %v\n", cpu.X86.HasAVX512F)
	fmt.Fprintf(w, "  FMA:     %v\n", cpu.X86.HasFMA)
}
