package builtin

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"termai/internal/constants"
	"termai/internal/terminal"
)

// procRow is one process line for ps and top.
type procRow struct {
	pid  int32
	name string
	cpu  float64
	mem  float32
}

func collectProcesses(ctx context.Context) ([]procRow, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]procRow, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		cpu, _ := p.CPUPercentWithContext(ctx)
		memPct, _ := p.MemoryPercentWithContext(ctx)
		rows = append(rows, procRow{pid: p.Pid, name: name, cpu: cpu, mem: memPct})
	}
	return rows, nil
}

// psCmd lists processes sorted by PID. Metric failures degrade to an
// informational line rather than a command failure.
func psCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	rows, err := collectProcesses(ctx)
	if err != nil {
		return terminal.OK("process information unavailable")
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].pid < rows[j].pid })
	out := []string{fmt.Sprintf("%-8s %-24s %6s %6s", "PID", "NAME", "CPU%", "MEM%")}
	for _, r := range rows {
		out = append(out, fmt.Sprintf("%-8d %-24s %6.1f %6.1f", r.pid, truncate(r.name, 24), r.cpu, r.mem))
	}
	return terminal.OK(out...)
}

func topCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	rows, err := collectProcesses(ctx)
	if err != nil {
		return terminal.OK("process information unavailable")
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].cpu > rows[j].cpu })
	if len(rows) > constants.TopProcessLimit {
		rows = rows[:constants.TopProcessLimit]
	}
	out := []string{fmt.Sprintf("%-8s %-24s %6s %6s", "PID", "NAME", "CPU%", "MEM%")}
	for _, r := range rows {
		out = append(out, fmt.Sprintf("%-8d %-24s %6.1f %6.1f", r.pid, truncate(r.name, 24), r.cpu, r.mem))
	}
	return terminal.OK(out...)
}

func killCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	if len(args) != 1 {
		return terminal.Failf(terminal.ExitUsage, "kill: usage: kill <pid>")
	}
	pid, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return terminal.Failf(terminal.ExitUsage, "kill: invalid pid '%s'", args[0])
	}
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return terminal.Failf(terminal.ExitFailure, "kill: no such process: %d", pid)
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return terminal.Failf(terminal.ExitFailure, "kill: cannot terminate %d: %v", pid, err)
	}
	return terminal.OK(fmt.Sprintf("sent SIGTERM to %d", pid))
}

func dfCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return terminal.OK("disk information unavailable")
	}
	out := []string{fmt.Sprintf("%-20s %10s %10s %10s %5s", "FILESYSTEM", "SIZE(GB)", "USED(GB)", "FREE(GB)", "USE%")}
	for _, p := range parts {
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue
		}
		out = append(out, fmt.Sprintf("%-20s %10.1f %10.1f %10.1f %4.0f%%",
			truncate(p.Mountpoint, 20),
			gb(usage.Total), gb(usage.Used), gb(usage.Free), usage.UsedPercent))
	}
	return terminal.OK(out...)
}

func freeCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return terminal.OK("memory information unavailable")
	}
	out := []string{
		fmt.Sprintf("%-8s %10s %10s %10s", "", "TOTAL(MB)", "USED(MB)", "FREE(MB)"),
		fmt.Sprintf("%-8s %10.0f %10.0f %10.0f", "Mem:", mb(vm.Total), mb(vm.Used), mb(vm.Available)),
	}
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		out = append(out, fmt.Sprintf("%-8s %10.0f %10.0f %10.0f", "Swap:", mb(swap.Total), mb(swap.Used), mb(swap.Free)))
	}
	return terminal.OK(out...)
}

func uptimeCmd(ctx context.Context, args []string, sess *terminal.Session) terminal.Result {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return terminal.OK("uptime information unavailable")
	}
	d := time.Duration(secs) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	line := fmt.Sprintf("up %d days, %d:%02d", days, hours, mins)
	if avg, err := load.AvgWithContext(ctx); err == nil {
		line += fmt.Sprintf(", load average: %.2f, %.2f, %.2f", avg.Load1, avg.Load5, avg.Load15)
	}
	return terminal.OK(line)
}

func gb(b uint64) float64 { return float64(b) / (1024 * 1024 * 1024) }
func mb(b uint64) float64 { return float64(b) / (1024 * 1024) }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "+"
}
