package ir

// IconstData builds the payload for an integer constant instruction of
// type t with immediate value imm.
func IconstData(t Type, imm int64) InstructionData {
	return InstructionData{Opcode: OpIconst, ResultType: t, Imm: imm}
}

// F32constData builds the payload for a 32-bit float constant instruction.
func F32constData(imm float64) InstructionData {
	return InstructionData{Opcode: OpF32const, ResultType: F32, FImm: imm}
}

// F64constData builds the payload for a 64-bit float constant instruction.
func F64constData(imm float64) InstructionData {
	return InstructionData{Opcode: OpF64const, ResultType: F64, FImm: imm}
}

// TrapData builds the payload for an unconditional user trap instruction.
func TrapData(userCode int64) InstructionData {
	return InstructionData{Opcode: OpTrap, Imm: userCode}
}

// ConstDataForType picks the constant-instruction payload appropriate for
// ty: f32const/f64const for the matching float width, iconst(ty, 0)
// otherwise. Mirrors the deliberately permissive choice in the reduction
// engine's ReplaceInstWithConst mutator: non-scalar types will make the
// verifier reject the candidate, which the oracle simply reports as a
// non-crasher.
func ConstDataForType(ty Type) (data InstructionData, name string) {
	switch ty {
	case F32:
		return F32constData(0), "f32const"
	case F64:
		return F64constData(0), "f64const"
	default:
		return IconstData(ty, 0), "iconst"
	}
}

// JumpData builds an unconditional branch to target, filling target's
// block parameters from args in order.
func JumpData(target BlockID, args ...Value) InstructionData {
	return InstructionData{Opcode: OpJump, Target: target, Args: append([]Value(nil), args...)}
}

// BrnzData builds a conditional branch to target taken when cond is
// nonzero, filling target's block parameters from args in order.
func BrnzData(cond Value, target BlockID, args ...Value) InstructionData {
	return InstructionData{
		Opcode: OpBrnz,
		Target: target,
		Args:   append([]Value{cond}, args...),
	}
}

// ReturnData builds a return instruction with the given operands.
func ReturnData(args ...Value) InstructionData {
	return InstructionData{Opcode: OpReturn, Args: append([]Value(nil), args...)}
}

// CallData builds a direct call instruction to funcRef with args.
func CallData(funcRef ExtFuncID, args ...Value) InstructionData {
	return InstructionData{Opcode: OpCall, FuncRef: funcRef, Args: append([]Value(nil), args...)}
}

// FuncAddrData builds a func_addr instruction referencing funcRef.
func FuncAddrData(funcRef ExtFuncID) InstructionData {
	return InstructionData{Opcode: OpFuncAddr, FuncRef: funcRef}
}

// CallIndirectData builds an indirect call through sigRef.
func CallIndirectData(sigRef SigID, callee Value, args ...Value) InstructionData {
	return InstructionData{
		Opcode: OpCallIndirect,
		SigRef: sigRef,
		Args:   append([]Value{callee}, args...),
	}
}

// StackLoadData builds a load from stack slot slot.
func StackLoadData(slot StackSlotID) InstructionData {
	return InstructionData{Opcode: OpStackLoad, StackSlot: slot}
}

// StackStoreData builds a store of arg into stack slot slot.
func StackStoreData(slot StackSlotID, arg Value) InstructionData {
	return InstructionData{Opcode: OpStackStore, StackSlot: slot, Args: []Value{arg}}
}

// RegSpillData builds a register-spill instruction targeting slot.
func RegSpillData(slot StackSlotID) InstructionData {
	return InstructionData{Opcode: OpRegSpill, StackSlot: slot}
}

// RegFillData builds a register-fill instruction sourcing from slot.
func RegFillData(slot StackSlotID) InstructionData {
	return InstructionData{Opcode: OpRegFill, StackSlot: slot}
}

// UnaryGlobalValueData builds an instruction materializing global value gv.
func UnaryGlobalValueData(gv GlobalValueID) InstructionData {
	return InstructionData{Opcode: OpUnaryGlobalValue, GlobalValue: gv}
}
