package orchestration

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
)

func ginkgoLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		GinkgoWriter.Println(prefix, args)
	}, funcr.Options{Verbosity: 1})
}

func scenarioConfig() *config.Config {
	cfg := config.Default()
	cfg.Project = "proj"
	cfg.Workstation.Name = "dev"
	cfg.Access.UserPrincipal = "alice@example.com"
	cfg.Build.SourceDir = GinkgoT().TempDir()
	cfg.Reconcile.PollInterval = time.Millisecond
	cfg.Reconcile.PollTimeout = 5 * time.Second
	return cfg
}

var _ = Describe("Reconciler", func() {
	var (
		ctx    context.Context
		cfg    *config.Config
		cp     *controlPlane
		client *gcp.MockClient
	)

	newReconciler := func() *Reconciler {
		return NewReconciler(client, cfg,
			WithObserver(provisioning.NewLogObserver(ginkgoLogger())),
			WithTimeouts(&config.Timeouts{Probe: time.Second}),
		)
	}

	BeforeEach(func() {
		ctx = context.Background()
		cfg = scenarioConfig()
		cp = newControlPlane()
		client = cp.client()
	})

	Context("when nothing exists yet", func() {
		It("creates cluster, repository, config and workstation in order without cycling", func() {
			endpoint, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(creates(client.Calls())).To(Equal([]string{
				"CreateCluster", "CreateRepository", "CreateConfig", "CreateInstance",
			}))
			Expect(client.CallCount("StopInstance")).To(Equal(0))
			Expect(client.CallCount("StartInstance")).To(Equal(0))
			Expect(client.CallCount("UpdateConfig")).To(Equal(0))
			Expect(client.CallCount("SetInstancePolicy")).To(Equal(1))

			Expect(endpoint.Workstation).To(Equal("dev"))
			Expect(endpoint.State).To(Equal(gcp.StateStopped))
			Expect(endpoint.Reachable).To(BeTrue())
		})

		It("grants the user only after the workstation exists", func() {
			_, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			calls := client.Calls()
			Expect(indexOf(calls, "SetInstancePolicy")).To(BeNumerically(">", indexOf(calls, "CreateInstance")))
			Expect(cp.policy.Bindings).To(ConsistOf(gcp.Binding{
				Role:    config.WorkstationUserRole,
				Members: []string{"user:alice@example.com"},
			}))
		})
	})

	Context("when everything exists and the workstation is running", func() {
		BeforeEach(func() {
			cp.withEverything(gcp.StateRunning)
		})

		It("stops, waits for STOPPED, starts and waits for RUNNING without creating", func() {
			endpoint, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(creates(client.Calls())).To(BeEmpty())
			Expect(mutating(client.Calls())).To(Equal([]string{"UpdateConfig", "StopInstance", "StartInstance"}))
			Expect(cp.observed).To(Equal([]string{
				"STATE_RUNNING", "stop",
				"STATE_STOPPING", "STATE_STOPPING", "STATE_STOPPED", "start",
				"STATE_STARTING", "STATE_RUNNING",
				"STATE_RUNNING",
			}))
			Expect(endpoint.State).To(Equal(gcp.StateRunning))
			Expect(endpoint.URL).To(Equal("https://dev.cluster-mock.cloudworkstations.dev"))
		})

		It("never starts before STOPPED has been observed", func() {
			_, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			start := indexOf(cp.observed, "start")
			Expect(start).To(BeNumerically(">", 0))
			Expect(cp.observed[start-1]).To(Equal(string(gcp.StateStopped)))
		})

		It("issues start without waiting when waitForRunning is off", func() {
			cfg.Reconcile.WaitForRunning = false

			_, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			start := indexOf(cp.observed, "start")
			Expect(cp.observed[start+1:]).To(Equal([]string{"STATE_STARTING"}), "only the final re-read follows start")
		})
	})

	Context("config presence", func() {
		It("creates with the full parameter set when absent", func() {
			cp.withEverything(gcp.StateStopped)
			cp.config = nil

			_, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(client.CallCount("CreateConfig")).To(Equal(1))
			Expect(client.CallCount("UpdateConfig")).To(Equal(0))
			Expect(cp.config.Spec.MachineType).To(Equal(config.DefaultMachineType))
			Expect(cp.config.Spec.ReclaimPolicy).To(Equal(config.ReclaimDelete))
		})

		It("only updates when present", func() {
			cp.withEverything(gcp.StateStopped)

			_, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(client.CallCount("CreateConfig")).To(Equal(0))
			Expect(client.CallCount("UpdateConfig")).To(Equal(1))
			Expect(cp.config.Spec.Image).To(Equal("us-central1-docker.pkg.dev/proj/workstations/workstation:latest"))
		})
	})

	Context("running twice with the same configuration", func() {
		It("creates nothing the second time and only cycles the workstation", func() {
			_, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			client.ResetCalls()
			_, err = newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(creates(client.Calls())).To(BeEmpty())
			Expect(mutating(client.Calls())).To(Equal([]string{"UpdateConfig", "StartInstance"}),
				"the created workstation is STOPPED, so only start is needed")
			Expect(client.CallCount("SetInstancePolicy")).To(Equal(0))
			Expect(client.CallCount("SetProjectPolicy")).To(Equal(0))
		})

		It("does not carry results of the previous run on the same reconciler", func() {
			r := newReconciler()
			endpoint, err := r.Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(endpoint.Reachable).To(BeTrue())
			firstState := r.State()

			client.ProbeFunc = func(context.Context, string) (int, error) { return 503, nil }
			client.ResetCalls()

			endpoint, err = r.Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(endpoint.Reachable).To(BeFalse())
			Expect(r.State()).NotTo(BeIdenticalTo(firstState))
			Expect(client.CallCount("GetProjectNumber")).To(Equal(1),
				"the service account is resolved again")
		})
	})

	Context("logging", func() {
		It("tags phase events with the workstation", func() {
			var lines []string
			log := funcr.New(func(_, args string) {
				lines = append(lines, args)
			}, funcr.Options{})
			r := NewReconciler(client, cfg,
				WithObserver(provisioning.NewLogObserver(log)),
				WithTimeouts(&config.Timeouts{Probe: time.Second}),
			)

			_, err := r.Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())

			var phaseLines []string
			for _, l := range lines {
				if strings.Contains(l, `"event"="phase.completed"`) {
					phaseLines = append(phaseLines, l)
				}
			}
			Expect(phaseLines).To(HaveLen(4))
			for _, l := range phaseLines {
				Expect(l).To(ContainSubstring(`"workstation"="dev"`))
			}
		})
	})

	Context("preflight", func() {
		It("fails with a configuration error before any remote call when the image is unresolved", func() {
			cfg.Image.URL = ""
			cfg.Image.Name = ""

			endpoint, err := newReconciler().Reconcile(ctx)

			Expect(endpoint).To(BeNil())
			var ce *provisioning.ConfigurationError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(client.Calls()).To(BeEmpty())
		})

		It("rejects an invalid configuration before any remote call", func() {
			cfg.Project = ""

			_, err := newReconciler().Reconcile(ctx)

			var ce *provisioning.ConfigurationError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(client.Calls()).To(BeEmpty())
		})
	})

	Context("failures", func() {
		It("absorbs an IAM bootstrap failure", func() {
			client.SetProjectPolicyFunc = func(context.Context, string, *gcp.Policy) (*gcp.Policy, error) {
				return nil, status.Error(codes.PermissionDenied, "caller lacks setIamPolicy")
			}

			_, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(client.CallCount("CreateInstance")).To(Equal(1))
		})

		It("stops before the config step when the build fails", func() {
			client.SubmitBuildFunc = func(context.Context, gcp.BuildRequest) (*gcp.BuildResult, error) {
				return nil, errors.New("step 0 exited with 1")
			}

			_, err := newReconciler().Reconcile(ctx)

			var be *provisioning.BuildError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(err.Error()).To(HavePrefix("image phase failed: "))
			Expect(client.CallCount("GetConfig")).To(Equal(0))
			Expect(client.CallCount("CreateConfig")).To(Equal(0))
		})

		It("surfaces a policy write conflict", func() {
			client.SetInstancePolicyFunc = func(context.Context, gcp.InstanceRef, *gcp.Policy) (*gcp.Policy, error) {
				return nil, status.Error(codes.Aborted, "etag mismatch")
			}

			_, err := newReconciler().Reconcile(ctx)

			var conflict *provisioning.PolicyWriteConflict
			Expect(errors.As(err, &conflict)).To(BeTrue())
			Expect(client.CallCount("SetInstancePolicy")).To(Equal(1))
		})

		It("does not fail when the verification probe fails", func() {
			client.ProbeFunc = func(context.Context, string) (int, error) { return 503, nil }

			endpoint, err := newReconciler().Reconcile(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(endpoint.Reachable).To(BeFalse())
		})

		It("reports a remote error and keeps partial state", func() {
			client.CreateConfigFunc = func(context.Context, gcp.ConfigRef, gcp.ConfigSpec) (*gcp.WorkstationConfig, error) {
				return nil, status.Error(codes.InvalidArgument, "bad machine type")
			}

			_, err := newReconciler().Reconcile(ctx)

			var re *provisioning.RemoteAPIError
			Expect(errors.As(err, &re)).To(BeTrue())
			Expect(re.Op).To(Equal("create config"))
			Expect(client.CallCount("GetInstance")).To(Equal(0))
		})

		It("returns the context error when cancelled while waiting", func() {
			cp.withEverything(gcp.StateRunning)
			cfg.Reconcile.PollTimeout = 0
			cancelCtx, cancel := context.WithCancel(ctx)
			client.StopInstanceFunc = func(context.Context, gcp.InstanceRef) error {
				cp.mu.Lock()
				cp.pending = []gcp.State{gcp.StateStopping}
				cp.mu.Unlock()
				go func() {
					time.Sleep(20 * time.Millisecond)
					cancel()
				}()
				return nil
			}

			_, err := newReconciler().Reconcile(cancelCtx)

			Expect(err).To(MatchError(context.Canceled))
			Expect(client.CallCount("StartInstance")).To(Equal(0))
		})
	})
})

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
