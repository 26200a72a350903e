package ir

import (
	"fmt"
	"strings"
)

// String renders f as a readable (not re-parseable) textual dump. The
// reports written by internal/report do not include it. The textual IR parser/printer
// pairing this would need to round-trip is an external collaborator the
// reduction engine never implements itself.
func (f *Function) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "function %s {\n", f.Name)
	for _, bid := range f.Blocks() {
		b, _ := f.Block(bid)
		fmt.Fprintf(&sb, "%s(%s):\n", bid, joinValues(b.Params))
		for _, iid := range b.Insts() {
			inst, _ := b.Inst(iid)
			fmt.Fprintf(&sb, "    %s%s = %s\n", iid, resultSuffix(inst.Results), describeInst(inst.Data))
		}
	}
	fmt.Fprint(&sb, "}")
	return sb.String()
}

func resultSuffix(results []Value) string {
	if len(results) == 0 {
		return ""
	}
	return " " + joinValues(results)
}

func joinValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func describeInst(d InstructionData) string {
	switch d.Opcode {
	case OpIconst:
		return fmt.Sprintf("iconst.%s %d", d.ResultType, d.Imm)
	case OpF32const:
		return fmt.Sprintf("f32const %g", d.FImm)
	case OpF64const:
		return fmt.Sprintf("f64const %g", d.FImm)
	case OpTrap:
		return fmt.Sprintf("trap user%d", d.Imm)
	case OpCall:
		return fmt.Sprintf("call fn%d(%s)", d.FuncRef, joinValues(d.Args))
	case OpFuncAddr:
		return fmt.Sprintf("func_addr fn%d", d.FuncRef)
	case OpCallIndirect:
		return fmt.Sprintf("call_indirect sig%d, %s", d.SigRef, joinValues(d.Args))
	case OpStackLoad:
		return fmt.Sprintf("stack_load ss%d", d.StackSlot)
	case OpStackStore:
		return fmt.Sprintf("stack_store %s, ss%d", joinValues(d.Args), d.StackSlot)
	case OpRegSpill:
		return fmt.Sprintf("regspill ss%d", d.StackSlot)
	case OpRegFill:
		return fmt.Sprintf("regfill ss%d", d.StackSlot)
	case OpUnaryGlobalValue:
		return fmt.Sprintf("global_value gv%d", d.GlobalValue)
	case OpJump:
		return fmt.Sprintf("jump %s(%s)", d.Target, joinValues(d.Args))
	case OpBrnz:
		return fmt.Sprintf("brnz %s, %s(%s)", d.Args[0], d.Target, joinValues(d.Args[1:]))
	case OpReturn:
		return fmt.Sprintf("return %s", joinValues(d.Args))
	default:
		return fmt.Sprintf("%s %s", d.Opcode, joinValues(d.Args))
	}
}
