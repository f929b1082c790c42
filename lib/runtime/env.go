package runtime

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// Env describes where the process is running.
type Env struct {
	OS          string
	Arch        string
	CPUs        int
	Platform    string
	Virtual     string // "docker", "kvm", "lxc" and so on, empty on bare metal.
	VirtualRole string // "guest" or "host".
	Kubernetes  bool
	Container   Container
}

// Container is the container the process runs in, zero if none is found.
type Container struct {
	Runtime string // "docker", "containerd", "cri-o", "podman" or "ecs".
	ID      string
}

func (env Env) InContainer() bool {
	switch env.Virtual {
	case "docker", "lxc", "podman", "containerd":
		return env.VirtualRole == "guest"
	default:
	}
	return env.Kubernetes || env.Container.ID != ""
}

const kubernetesServiceAccountPath = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"

func isRunningAtKubernetes() bool {
	if _, ok := os.LookupEnv("KUBERNETES_SERVICE_HOST"); ok {
		return true
	}
	stat, err := os.Stat(kubernetesServiceAccountPath)
	if err != nil {
		return false
	}
	return !stat.IsDir() && stat.Size() > 0
}

// DetectEnv never fails, the unknown parts are left empty.
func DetectEnv(ctx context.Context) Env {
	env := Env{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		CPUs:       runtime.NumCPU(),
		Kubernetes: isRunningAtKubernetes(),
		Container:  LoadContainer(),
	}
	if platform, _, version, err := host.PlatformInformationWithContext(ctx); err == nil {
		env.Platform = platform + " " + version
	}
	if system, role, err := host.VirtualizationWithContext(ctx); err == nil {
		env.Virtual, env.VirtualRole = system, role
	}
	return env
}
