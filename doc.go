/*
Package sound defines the capability contracts of a pull-based signal graph.

# Concept

A signal graph is built from small stateful nodes: generators, filters and
mixers. Nodes are combined algebraically into a computation graph which is
pulled, block by block, from its terminal node:

	tone := osc.New(osc.Sine, 440)
	chord := node.Add(tone, osc.New(osc.Sine, 550))

Each Sample call on a combinator synchronously samples the combinator's
sources. There is no implicit parallelism or queueing inside the graph.

# Blocks

Signal data travels in blocks, fixed-length sequences of real or complex
samples. A combinator's output is promoted from real to complex as soon as
any of its inputs produces a complex value and never reverts back.

End of stream is communicated by a source returning io.EOF instead of a
block. Combinators propagate it upward without raising an error.

# Sinks

A Sink is a rigid consumer: it accepts only blocks of exactly its fixed
block size. The adapter package reconciles arbitrarily sized producer
writes with this constraint.

The core does not guarantee acyclic graphs: traversal with node.Graph
terminates on cycles, sampling a cyclic graph does not.
*/
package sound
