package main

import (
	"fmt"

	"github.com/gitgovernance/core/internal/backlog"
	"github.com/gitgovernance/core/internal/config"
	"github.com/gitgovernance/core/internal/gerrors"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/store"
	"github.com/gitgovernance/core/internal/workflow"
	"github.com/gitgovernance/core/pkg/project"
)

// recordStoreDirs maps each record type to its store subdirectory under the
// project's .gitgov directory.
var recordStoreDirs = map[string]string{
	"tasks":      "tasks",
	"cycles":     "cycles",
	"executions": "executions",
	"changelogs": "changelogs",
	"feedback":   "feedback",
	"actors":     "actors",
	"agents":     "agents",
}

// resolveProjectRoot finds the project root, honoring an explicit --base-dir
// override (if set, it IS the .gitgov parent, no walk required).
func resolveProjectRoot() (string, error) {
	if flagBaseDir != "" {
		return flagBaseDir, nil
	}
	root := project.DetectRoot("")
	if root == "" {
		return "", &gerrors.ProjectRootError{SearchedFrom: "."}
	}
	return root, nil
}

// buildEngine wires a backlog.Engine for the current invocation: resolves
// the project root and config, constructs one FileStore per record type,
// loads the project's methodology (or the default), and signs in as the
// local identity.json signer.
func buildEngine() (*backlog.Engine, string, error) {
	root, err := resolveProjectRoot()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(nil)
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}

	id, err := loadLocalIdentity(root)
	if err != nil {
		return nil, "", err
	}

	serializer := store.SerializerFor(cfg.Store.Serializer)
	taskStore := store.NewFileStore[record.Envelope[record.TaskPayload]](
		project.StorePath(root, recordStoreDirs["tasks"]),
		store.WithExtension[record.Envelope[record.TaskPayload]](cfg.Store.Extension),
		store.WithCreateIfMissing[record.Envelope[record.TaskPayload]](cfg.Store.CreateIfMissing),
		store.WithSerializer[record.Envelope[record.TaskPayload]](serializer),
	)
	cycleStore := store.NewFileStore[record.Envelope[record.CyclePayload]](
		project.StorePath(root, recordStoreDirs["cycles"]),
		store.WithExtension[record.Envelope[record.CyclePayload]](cfg.Store.Extension),
		store.WithCreateIfMissing[record.Envelope[record.CyclePayload]](cfg.Store.CreateIfMissing),
		store.WithSerializer[record.Envelope[record.CyclePayload]](serializer),
	)
	executionStore := store.NewFileStore[record.Envelope[record.ExecutionPayload]](
		project.StorePath(root, recordStoreDirs["executions"]),
		store.WithExtension[record.Envelope[record.ExecutionPayload]](cfg.Store.Extension),
		store.WithCreateIfMissing[record.Envelope[record.ExecutionPayload]](cfg.Store.CreateIfMissing),
		store.WithSerializer[record.Envelope[record.ExecutionPayload]](serializer),
	)
	changelogStore := store.NewFileStore[record.Envelope[record.ChangelogPayload]](
		project.StorePath(root, recordStoreDirs["changelogs"]),
		store.WithExtension[record.Envelope[record.ChangelogPayload]](cfg.Store.Extension),
		store.WithCreateIfMissing[record.Envelope[record.ChangelogPayload]](cfg.Store.CreateIfMissing),
		store.WithSerializer[record.Envelope[record.ChangelogPayload]](serializer),
	)
	feedbackStore := store.NewFileStore[record.Envelope[record.FeedbackPayload]](
		project.StorePath(root, recordStoreDirs["feedback"]),
		store.WithExtension[record.Envelope[record.FeedbackPayload]](cfg.Store.Extension),
		store.WithCreateIfMissing[record.Envelope[record.FeedbackPayload]](cfg.Store.CreateIfMissing),
		store.WithSerializer[record.Envelope[record.FeedbackPayload]](serializer),
	)
	actorStore := store.NewFileStore[record.Envelope[record.ActorPayload]](
		project.StorePath(root, recordStoreDirs["actors"]),
		store.WithExtension[record.Envelope[record.ActorPayload]](cfg.Store.Extension),
		store.WithCreateIfMissing[record.Envelope[record.ActorPayload]](cfg.Store.CreateIfMissing),
		store.WithSerializer[record.Envelope[record.ActorPayload]](serializer),
	)
	agentStore := store.NewFileStore[record.Envelope[record.AgentPayload]](
		project.StorePath(root, recordStoreDirs["agents"]),
		store.WithExtension[record.Envelope[record.AgentPayload]](cfg.Store.Extension),
		store.WithCreateIfMissing[record.Envelope[record.AgentPayload]](cfg.Store.CreateIfMissing),
		store.WithSerializer[record.Envelope[record.AgentPayload]](serializer),
	)

	var methodology *workflow.Document
	if cfg.Workflow.Methodology != "" {
		methodology, err = workflow.LoadMethodology(cfg.Workflow.Methodology)
		if err != nil {
			return nil, "", fmt.Errorf("load methodology: %w", err)
		}
	}

	engine := &backlog.Engine{
		Tasks:          taskStore,
		Cycles:         cycleStore,
		Executions:     executionStore,
		Changelogs:     changelogStore,
		Feedback:       feedbackStore,
		Actors:         actorStore,
		Agents:         agentStore,
		Methodology:    methodology,
		PrivateKey:     id.PrivateKey,
		KeyID:          id.ActorID,
		CurrentActorID: id.ActorID,
	}
	return engine, root, nil
}

// outputFormat resolves the effective output format: flag override, else
// project config, else "table".
func outputFormat(cfg string) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg != "" {
		return cfg
	}
	return "table"
}
