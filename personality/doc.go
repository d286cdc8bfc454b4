// Package personality defines the agent's personality sliders, class
// behavior profiles, the class-tier depth gate, the graded capability
// vector, and the depth-readiness gate (spec.md §3.2-§3.4, §6.3).
package personality
