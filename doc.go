// Package pycforge acquires, builds, and drives historical Python
// interpreters in order to compile a single source file into a
// version-tagged bytecode artifact.
//
// Python release packaging changed several times over the decades: download
// hosts moved, tarball naming conventions changed, one release cannot be
// fetched automatically at all, and the oldest interpreters have no usable
// bytecode-compiler entry point. This package hides all of that behind a
// small pipeline keyed on a short version identifier such as "1.2" or "3.8".
//
// # Pipeline
//
// For each requested version the pipeline is:
//
//	Registry.Classify          short identifier -> VersionSpec (full release + era)
//	Acquirer.Ensure            download, extract, rename, patch (idempotent)
//	NativeBuilder.Ensure       ./configure + make with per-phase logs (idempotent)
//	  or ContainerBuilder.Ensure   build or reuse an image tagged python:<full>
//	Executor.Compile           era-appropriate compile strategy -> <base>.<short>.pyc
//
// The Orchestrator runs this sequence for every requested version,
// isolating compile failures per version while treating toolchain
// acquisition and build failures as fatal to the whole run.
//
// # Eras
//
// Every known release is classified into one of four eras which determine
// its download URL shape, tarball name, and compile strategy:
//
//   - EraAncient: python<full>.tar.gz on the legacy host
//   - EraLegacy: python-<full>.tar.gz on the legacy host
//   - EraLicensed: no URL; the operator must place the tarball manually
//   - EraModern: <modern-host>/<full>/Python-<full>.tgz
//
// Interpreters from the ancient and legacy eras have no standalone
// compiler, so compilation is triggered as a side effect of importing a
// staged copy of the input. Everything newer is compiled through
// py_compile with explicit source and destination paths.
//
// # Basic Usage
//
//	cfg := &pycforge.Config{WorkRoot: "/var/cache/pycforge"}
//	orch := pycforge.NewOrchestrator(cfg)
//
//	results, err := orch.Run(ctx, "hello.py", []string{"1.2", "3.8"}, false)
//	if err != nil {
//	    // toolchain acquisition or build failed; nothing more was attempted
//	}
//	for _, r := range results {
//	    // r.Artifact is "hello.1.2.pyc" etc., or r.Err explains the failure
//	}
//
// # Caching
//
// Every expensive step is cached by existence only: a tarball in the cache
// directory is never re-downloaded, an extracted tree is never re-fetched,
// a runnable interpreter inside a tree is never rebuilt, and a local image
// tag is never rebuilt. Nothing is content-hashed; deleting the file or
// directory is the invalidation mechanism.
//
// # Requirements
//
// The native path shells out to curl, tar, patch, a C compiler, and make.
// The container path needs podman or docker on PATH. Requirements can be
// checked up front with CheckRequiredTools.
package pycforge
