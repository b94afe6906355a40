// Package sd provides service-discovery health checks for solpoold.
package sd

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"
)

const (
	B  = 1
	KB = 1024 * B
	MB = 1024 * KB
	GB = 1024 * MB
)

func HealthCheck() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
}

func DiskCheck() echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := disk.Usage("/")
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}

		usedMB := int(u.Used) / MB
		usedGB := int(u.Used) / GB
		totalMB := int(u.Total) / MB
		totalGB := int(u.Total) / GB
		usedPercent := int(u.UsedPercent)

		status := http.StatusOK
		text := "OK"
		if usedPercent >= 95 {
			status = http.StatusInternalServerError
			text = "CRITICAL"
		} else if usedPercent >= 90 {
			status = http.StatusTooManyRequests
			text = "WARNING"
		}

		message := fmt.Sprintf("%s - Free space: %dMB (%dGB) / %dMB (%dGB) | Used: %d%%",
			text, usedMB, usedGB, totalMB, totalGB, usedPercent)
		return c.String(status, message)
	}
}

func CPUCheck() echo.HandlerFunc {
	return func(c echo.Context) error {
		cores, err := cpu.Counts(false)
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}
		a, err := load.Avg()
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}

		l1 := a.Load1
		l5 := a.Load5
		l15 := a.Load15

		status := http.StatusOK
		text := "OK"
		if l5 >= float64(cores-1) {
			status = http.StatusInternalServerError
			text = "CRITICAL"
		} else if l5 >= float64(cores-2) {
			status = http.StatusTooManyRequests
			text = "WARNING"
		}

		message := fmt.Sprintf("%s - Load average: %.2f, %.2f, %.2f | Cores: %d", text, l1, l5, l15, cores)
		return c.String(status, message)
	}
}

func RAMCheck() echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := mem.VirtualMemory()
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}

		usedMB := int(u.Used) / MB
		totalMB := int(u.Total) / MB
		usedPercent := int(u.UsedPercent)

		status := http.StatusOK
		text := "OK"
		if usedPercent >= 95 {
			status = http.StatusInternalServerError
			text = "CRITICAL"
		} else if usedPercent >= 90 {
			status = http.StatusTooManyRequests
			text = "WARNING"
		}

		message := fmt.Sprintf("%s - Used: %dMB / %dMB | Used: %d%%", text, usedMB, totalMB, usedPercent)
		return c.String(status, message)
	}
}

func HostCheck() echo.HandlerFunc {
	return func(c echo.Context) error {
		info, err := host.Info()
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}
		message := fmt.Sprintf("OK - Host: %s | OS: %s %s | Uptime: %ds",
			info.Hostname, info.Platform, info.PlatformVersion, info.Uptime)
		return c.String(http.StatusOK, message)
	}
}
