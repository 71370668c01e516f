// Package meshkernel provides two independent, cooperating pieces of a
// BIM/CAD tessellation pipeline: simplify decimates a triangulated
// surface mesh with quadric-error metrics while preserving face ids
// and boundary loops, and deflection derives dynamic tessellation
// tolerances for slender swept solids (extrusions, revolutions, swept
// disks) from their cross-section geometry.
//
// Neither package depends on the other. A caller producing meshes from
// a swept solid typically calls deflection.Compute first to choose
// tessellation tolerances, tessellates with those tolerances using
// whatever CAD kernel it already has, and then hands the result to
// simplify.New(...).Run(...) to hit a target triangle budget.
package meshkernel
