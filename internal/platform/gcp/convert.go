package gcp

import (
	"time"

	"cloud.google.com/go/iam/apiv1/iampb"
	"cloud.google.com/go/workstations/apiv1/workstationspb"
	"google.golang.org/genproto/googleapis/type/expr"
	"google.golang.org/protobuf/types/known/durationpb"
)

// homeMountPath is where the persistent disk is mounted in the container.
const homeMountPath = "/home"

func clusterFromPB(pb *workstationspb.WorkstationCluster) *Cluster {
	return &Cluster{
		Name:       pb.GetName(),
		Network:    pb.GetNetwork(),
		Subnetwork: pb.GetSubnetwork(),
		Labels:     pb.GetLabels(),
	}
}

func configToPB(spec ConfigSpec) *workstationspb.WorkstationConfig {
	pb := &workstationspb.WorkstationConfig{
		Labels: spec.Labels,
		Host: &workstationspb.WorkstationConfig_Host{
			Config: &workstationspb.WorkstationConfig_Host_GceInstance_{
				GceInstance: &workstationspb.WorkstationConfig_Host_GceInstance{
					MachineType:    spec.MachineType,
					ServiceAccount: spec.ServiceAccount,
				},
			},
		},
		PersistentDirectories: []*workstationspb.WorkstationConfig_PersistentDirectory{{
			MountPath: homeMountPath,
			DirectoryType: &workstationspb.WorkstationConfig_PersistentDirectory_GcePd{
				GcePd: &workstationspb.WorkstationConfig_PersistentDirectory_GceRegionalPersistentDisk{
					SizeGb:        spec.DiskSizeGB,
					FsType:        "ext4",
					DiskType:      spec.DiskType,
					ReclaimPolicy: reclaimPolicyToPB(spec.ReclaimPolicy),
				},
			},
		}},
		Container: &workstationspb.WorkstationConfig_Container{
			Image: spec.Image,
		},
		AllowedPorts: portsToPB(spec.AllowedPorts),
	}
	pb.IdleTimeout = durationOrNil(spec.IdleTimeout)
	pb.RunningTimeout = durationOrNil(spec.RunningTimeout)
	return pb
}

func configFromPB(pb *workstationspb.WorkstationConfig) *WorkstationConfig {
	gce := pb.GetHost().GetGceInstance()
	spec := ConfigSpec{
		MachineType:    gce.GetMachineType(),
		ServiceAccount: gce.GetServiceAccount(),
		Image:          pb.GetContainer().GetImage(),
		Labels:         pb.GetLabels(),
	}
	for _, dir := range pb.GetPersistentDirectories() {
		if pd := dir.GetGcePd(); pd != nil {
			spec.DiskSizeGB = pd.GetSizeGb()
			spec.DiskType = pd.GetDiskType()
			spec.ReclaimPolicy = pd.GetReclaimPolicy().String()
			break
		}
	}
	for _, p := range pb.GetAllowedPorts() {
		spec.AllowedPorts = append(spec.AllowedPorts, PortRange{First: p.GetFirst(), Last: p.GetLast()})
	}
	if d := pb.GetIdleTimeout(); d != nil {
		spec.IdleTimeout = d.AsDuration()
	}
	if d := pb.GetRunningTimeout(); d != nil {
		spec.RunningTimeout = d.AsDuration()
	}
	return &WorkstationConfig{Name: pb.GetName(), Spec: spec}
}

func reclaimPolicyToPB(policy string) workstationspb.WorkstationConfig_PersistentDirectory_GceRegionalPersistentDisk_ReclaimPolicy {
	v, ok := workstationspb.WorkstationConfig_PersistentDirectory_GceRegionalPersistentDisk_ReclaimPolicy_value[policy]
	if !ok {
		return workstationspb.WorkstationConfig_PersistentDirectory_GceRegionalPersistentDisk_DELETE
	}
	return workstationspb.WorkstationConfig_PersistentDirectory_GceRegionalPersistentDisk_ReclaimPolicy(v)
}

func portsToPB(ports []PortRange) []*workstationspb.WorkstationConfig_PortRange {
	out := make([]*workstationspb.WorkstationConfig_PortRange, 0, len(ports))
	for _, p := range ports {
		out = append(out, &workstationspb.WorkstationConfig_PortRange{First: p.First, Last: p.Last})
	}
	return out
}

func instanceFromPB(pb *workstationspb.Workstation) *Instance {
	return &Instance{
		Name:   pb.GetName(),
		State:  stateFromPB(pb.GetState()),
		Host:   pb.GetHost(),
		Labels: pb.GetLabels(),
	}
}

func stateFromPB(s workstationspb.Workstation_State) State {
	switch s {
	case workstationspb.Workstation_STATE_STARTING:
		return StateStarting
	case workstationspb.Workstation_STATE_RUNNING:
		return StateRunning
	case workstationspb.Workstation_STATE_STOPPING:
		return StateStopping
	case workstationspb.Workstation_STATE_STOPPED:
		return StateStopped
	default:
		return StateUnknown
	}
}

func policyFromPB(pb *iampb.Policy) *Policy {
	p := &Policy{
		Version: pb.GetVersion(),
		Etag:    pb.GetEtag(),
	}
	for _, b := range pb.GetBindings() {
		binding := Binding{Role: b.GetRole(), Members: b.GetMembers()}
		if c := b.GetCondition(); c != nil {
			binding.Condition = &Condition{
				Title:       c.GetTitle(),
				Description: c.GetDescription(),
				Expression:  c.GetExpression(),
			}
		}
		p.Bindings = append(p.Bindings, binding)
	}
	return p
}

func policyToPB(p *Policy) *iampb.Policy {
	pb := &iampb.Policy{
		Version: p.Version,
		Etag:    p.Etag,
	}
	for _, b := range p.Bindings {
		binding := &iampb.Binding{Role: b.Role, Members: b.Members}
		if b.Condition != nil {
			binding.Condition = &expr.Expr{
				Title:       b.Condition.Title,
				Description: b.Condition.Description,
				Expression:  b.Condition.Expression,
			}
		}
		pb.Bindings = append(pb.Bindings, binding)
	}
	return pb
}

func durationOrNil(d time.Duration) *durationpb.Duration {
	if d <= 0 {
		return nil
	}
	return durationpb.New(d)
}
