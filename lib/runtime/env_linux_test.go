//go:build linux
// +build linux

package runtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testContainerID = "19cd7a809d879d9c855bb93e4d399efe795a769ac856faaa5256cdd8387fe4b1"
	testTaskID      = "0123456789abcdef0123456789abcdef"
)

func TestParseCgroup(t *testing.T) {
	testcases := []struct {
		name     string
		cgroup   string
		expected Container
	}{
		{
			"containerd",
			"0::/kubepods.slice/kubepods-besteffort.slice/kubepods-besteffort-pode6ac4a8d_1076_453e_9ddb_3976520e3178.slice/cri-containerd-" + testContainerID + ".scope",
			Container{Runtime: "containerd", ID: testContainerID},
		},
		{"docker v1", "12:memory:/docker/" + testContainerID, Container{Runtime: "docker", ID: testContainerID}},
		{"docker systemd", "0::/system.slice/docker-" + testContainerID + ".scope", Container{Runtime: "docker", ID: testContainerID}},
		{"podman", "0::/machine.slice/libpod-" + testContainerID + ".scope", Container{Runtime: "podman", ID: testContainerID}},
		{
			"cri-o",
			"0::/kubepods/besteffort/pode6ac4a8d-1076-453e-9ddb-3976520e3178/crio-" + testContainerID + ".scope",
			Container{Runtime: "cri-o", ID: testContainerID},
		},
		{
			"ecs",
			"9:perf_event:/ecs/" + testTaskID + "/" + testTaskID + "-1234567890",
			Container{Runtime: "ecs", ID: testTaskID + "-1234567890"},
		},
		{
			"first match of many lines",
			"0::/\n1:name=systemd:/user.slice\n12:memory:/docker/" + testContainerID,
			Container{Runtime: "docker", ID: testContainerID},
		},
		{"host", "0::/user.slice/user-1000.slice/session-2.scope", Container{}},
		{"cgroup v2 namespace", "0::/", Container{}},
		{"malformed", "not a cgroup line", Container{}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.expected, parseCgroup(strings.NewReader(tc.cgroup)))
		})
	}
}

func TestParseMountInfo(t *testing.T) {
	testcases := []struct {
		name      string
		mountInfo string
		expected  Container
	}{
		{
			"docker",
			"1200 1180 8:1 /var/lib/docker/containers/" + testContainerID + "/hostname /etc/hostname rw,relatime - ext4 /dev/sda1 rw",
			Container{Runtime: "docker", ID: testContainerID},
		},
		{
			"podman",
			"1200 1180 0:45 /var/lib/containers/storage/overlay-containers/" + testContainerID + "/userdata/hostname /etc/hostname rw - tmpfs tmpfs rw",
			Container{Runtime: "podman", ID: testContainerID},
		},
		{"host", "22 1 8:1 / / rw,relatime shared:1 - ext4 /dev/sda1 rw", Container{}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.expected, parseMountInfo(strings.NewReader(tc.mountInfo)))
		})
	}
}

func TestLoadContainer(t *testing.T) {
	c := LoadContainer()
	if c.ID == "" {
		require.Empty(t, c.Runtime)
	}
	t.Logf("container: %+v", c)
}
