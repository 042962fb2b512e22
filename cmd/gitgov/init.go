package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gitgovernance/core/internal/backlog"
	"github.com/gitgovernance/core/internal/idgen"
	"github.com/gitgovernance/core/internal/record"
	"github.com/gitgovernance/core/internal/store"
	"github.com/gitgovernance/core/pkg/project"
)

var (
	initDisplayName string
	initProjectName string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize GitGovernance in the current repository",
	Long: `Set up a repository for GitGovernance: the .gitgov directory, a
signing identity for the current operator, and a root Actor record for that
identity. No Cycle record is created.

This creates:
  .gitgov/identity.json       - local signer (private key, actor id)
  .gitgov/actors/              - Actor records
  .gitgov/agents/               - Agent records
  .gitgov/tasks/                - Task records
  .gitgov/cycles/               - Cycle records
  .gitgov/executions/           - Execution records
  .gitgov/health/                - backlog health snapshots and history
  .gitgov/changelogs/           - Changelog records
  .gitgov/feedback/             - Feedback records

Safe to run multiple times (idempotent: an existing identity is reused).`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDisplayName, "name", "", "Display name for the root actor (default: OS username)")
	initCmd.Flags().StringVar(&initProjectName, "project", "", "Project name recorded in config.yaml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root := flagBaseDir
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
	}

	gitgovDir := filepath.Join(root, project.MarkerDir)
	for _, dir := range recordStoreDirs {
		if err := os.MkdirAll(filepath.Join(gitgovDir, dir), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.MkdirAll(healthDir(root), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", healthDir(root), err)
	}

	displayName := initDisplayName
	if displayName == "" {
		displayName = currentOSUser()
	}

	actorStore := store.NewFileStore[record.Envelope[record.ActorPayload]](
		project.StorePath(root, recordStoreDirs["actors"]),
	)

	if _, err := os.Stat(identityPath(root)); os.IsNotExist(err) {
		if err := bootstrapRootActor(root, displayName, actorStore); err != nil {
			return err
		}
	} else {
		verbosePrintf("identity.json already present, reusing it\n")
	}

	if err := writeInitialConfig(root, initProjectName); err != nil {
		return err
	}

	fmt.Printf("Initialized GitGovernance in %s\n", root)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  gitgov task create --title \"...\" --description \"...\"")
	fmt.Println("  gitgov status")
	return nil
}

// bootstrapRootActor generates a signer keypair, gives the actor the author,
// approver and approver:quality roles, and persists both the identity.json and the matching
// Actor record (self-signed — there is no other actor yet to sign for it).
func bootstrapRootActor(root, displayName string, actorStore store.Store[record.Envelope[record.ActorPayload]]) error {
	actorID := idgen.ActorID("human", displayName)

	id, publicKey, err := createLocalIdentity(root, actorID)
	if err != nil {
		return err
	}

	engine := &backlog.Engine{
		Actors:         actorStore,
		PrivateKey:     id.PrivateKey,
		KeyID:          id.ActorID,
		CurrentActorID: id.ActorID,
	}

	env, err := engine.CreateActor(record.ActorPayload{
		ID:          actorID,
		Type:        record.ActorHuman,
		DisplayName: displayName,
		PublicKey:   publicKey,
		Roles:       []string{"author", "approver", "approver:quality"},
	})
	if err != nil {
		return fmt.Errorf("create root actor: %w", err)
	}

	verbosePrintf("created actor %s\n", env.Payload.ID)
	return nil
}

func writeInitialConfig(root, projectName string) error {
	configDir := filepath.Join(root, project.MarkerDir)
	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	name := projectName
	if name == "" {
		name = filepath.Base(root)
	}

	content := fmt.Sprintf("project:\n  name: %q\n", name)
	return os.WriteFile(configPath, []byte(content), 0o644)
}

func currentOSUser() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if name := os.Getenv("USERNAME"); name != "" {
		return name
	}
	return "operator"
}
