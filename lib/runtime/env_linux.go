//go:build linux
// +build linux

package runtime

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	// A cgroup path segment holding a container id, with an optional runtime
	// prefix and systemd scope suffix, e.g. "cri-containerd-<id>.scope".
	cgroupSegmentRegex = regexp.MustCompile(`^(?:([a-z]+(?:-[a-z]+)?)-)?` +
		`([0-9a-f]{64}|[0-9a-f]{32}-\d+|[0-9a-f]{8}(?:[-_][0-9a-f]{4}){3}[-_][0-9a-f]{12})` +
		`(?:\.scope)?$`)
	ecsTaskIDRegex = regexp.MustCompile(`^[0-9a-f]{32}-\d+$`)
	// cgroup v2 namespaces hide the path, the mounts of the container files
	// still carry the id.
	mountContainerRegex = regexp.MustCompile(`/(docker/containers|overlay-containers)/([0-9a-f]{64})/`)

	runtimeByName = map[string]string{
		"docker":             "docker",
		"docker/containers":  "docker",
		"cri-containerd":     "containerd",
		"containerd":         "containerd",
		"crio":               "cri-o",
		"libpod":             "podman",
		"overlay-containers": "podman",
	}
)

// containerFromCgroupPath walks the segments from the leaf, the innermost
// id wins.
func containerFromCgroupPath(path string) (Container, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		m := cgroupSegmentRegex.FindStringSubmatch(segments[i])
		if m == nil {
			continue
		}
		c := Container{ID: m[2], Runtime: runtimeByName[m[1]]}
		switch {
		case c.Runtime != "":
		case ecsTaskIDRegex.MatchString(c.ID):
			c.Runtime = "ecs"
		case i > 0:
			c.Runtime = runtimeByName[segments[i-1]]
		}
		return c, true
	}
	return Container{}, false
}

// parseCgroup reads /proc/self/cgroup lines: "hierarchy-ID:controllers:path".
func parseCgroup(r io.Reader) Container {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), ":", 3)
		if len(fields) != 3 {
			continue
		}
		if c, ok := containerFromCgroupPath(fields[2]); ok {
			return c
		}
	}
	return Container{}
}

func parseMountInfo(r io.Reader) Container {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if m := mountContainerRegex.FindStringSubmatch(scanner.Text()); m != nil {
			return Container{Runtime: runtimeByName[m[1]], ID: m[2]}
		}
	}
	return Container{}
}

func loadFrom(path string, parse func(io.Reader) Container) Container {
	f, err := os.Open(path)
	if err != nil {
		return Container{}
	}
	defer f.Close()
	return parse(f)
}

// LoadContainer tries the cgroup of the process first, then its mounts.
func LoadContainer() Container {
	if c := loadFrom("/proc/self/cgroup", parseCgroup); c.ID != "" {
		return c
	}
	return loadFrom("/proc/self/mountinfo", parseMountInfo)
}
